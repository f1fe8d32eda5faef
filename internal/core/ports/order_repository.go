package ports

import (
	"context"

	"github.com/redtable/pos-system/internal/core/domain"
)

// OrderItemInput is one requested line of a new order, by dish id.
type OrderItemInput struct {
	DishID   int64
	Quantity int
}

// OrderRepository defines persistence operations for orders, including the
// order-creation algorithm itself.
type OrderRepository interface {
	// Create places a new order: it claims the next per-day order number
	// atomically, resolves every dish id in one bulk lookup, freezes the
	// line-item snapshots in caller order and inserts a single pending order
	// row. Any unknown dish id rejects the whole order with
	// domain.ErrDishNotFound.
	Create(ctx context.Context, tableNum int, items []OrderItemInput) (int64, error)

	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListToday(ctx context.Context) ([]domain.Order, error)

	// UpdateStatus applies a status transition after validating it against
	// the order state machine; an illegal move yields
	// domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id int64, next domain.OrderStatus) error

	// TodayStats aggregates today's order count and sales total.
	TodayStats(ctx context.Context) (domain.DayStats, error)
}
