package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusServed    OrderStatus = "served"
	StatusClosed    OrderStatus = "closed"
	StatusCancelled OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusServed, StatusCancelled},
	StatusServed:    {StatusClosed},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid. Closed and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case StatusPending, StatusPreparing, StatusServed, StatusClosed, StatusCancelled:
		return s, nil
	}
	return "", errors.New("unknown order status")
}

// OrderLine is an immutable line-item snapshot. Name and UnitPrice are copies
// of the dish row taken at order creation; later menu edits must never change
// them.
type OrderLine struct {
	DishID    int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is a placed order. OrderNum is unique within the creation day and
// restarts at 1 each calendar day; TotalPrice is computed once at creation
// and frozen.
type Order struct {
	ID         int64       `json:"id"`
	OrderNum   int         `json:"order_num"`
	TableNum   int         `json:"table_num"`
	Items      []OrderLine `json:"items"`
	TotalPrice int64       `json:"total_price"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// DayStats aggregates today's activity for the dashboard.
type DayStats struct {
	OrderCount int   `json:"order_count"`
	TotalSales int64 `json:"total_sales"`
}
