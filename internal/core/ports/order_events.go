package ports

import (
	"context"

	"github.com/redtable/pos-system/internal/core/domain"
)

// OrderEvent describes a lifecycle change of an order: placement or a status
// transition.
type OrderEvent struct {
	OrderID  int64              `json:"order_id"`
	OrderNum int                `json:"order_num"`
	TableNum int                `json:"table_num"`
	Status   domain.OrderStatus `json:"status"`
}

// OrderEventPublisher accepts order lifecycle events for asynchronous
// delivery. Publishing never blocks the request path.
type OrderEventPublisher interface {
	Enqueue(event OrderEvent)
}

// OrderEventSink is the delivery end of the event pipeline, e.g. the kitchen
// display feed.
type OrderEventSink interface {
	Handle(ctx context.Context, event OrderEvent) error
}
