package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/redtable/pos-system/internal/api/metrics"
	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

// OrderHandler exposes order placement and the order lifecycle. Lifecycle
// events are pushed to the kitchen feed via events; a nil publisher disables
// the feed.
type OrderHandler struct {
	events ports.OrderEventPublisher
}

func NewOrderHandler(events ports.OrderEventPublisher) *OrderHandler {
	return &OrderHandler{events: events}
}

func (h *OrderHandler) notify(order *domain.Order) {
	if h.events == nil {
		return
	}
	h.events.Enqueue(ports.OrderEvent{
		OrderID:  order.ID,
		OrderNum: order.OrderNum,
		TableNum: order.TableNum,
		Status:   order.Status,
	})
}

type orderItemRequest struct {
	DishID   int64 `json:"dish_id"  validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	TableNum int                `json:"table_num" validate:"required,gt=0"`
	Items    []orderItemRequest `json:"items"     validate:"required,min=1,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create places a new order and returns the stored row, including its
// per-day order number and frozen totals.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := requestStore(c)
	if err != nil {
		return err
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ports.OrderItemInput{DishID: item.DishID, Quantity: item.Quantity})
	}

	ctx := c.Request().Context()
	id, err := store.Orders().Create(ctx, req.TableNum, items)
	if err != nil {
		return err
	}

	order, err := store.Orders().GetByID(ctx, id)
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderValueCents.Observe(float64(order.TotalPrice))
	h.notify(order)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Get(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := store.Orders().GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListToday(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	orders, err := store.Orders().ListToday(c.Request().Context())
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus applies one step of the order state machine.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	next, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := requestStore(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := store.Orders().UpdateStatus(ctx, id, next); err != nil {
		return err
	}

	if order, err := store.Orders().GetByID(ctx, id); err == nil {
		h.notify(order)
	}
	return c.NoContent(http.StatusNoContent)
}

// TodayStats returns today's order count and sales total for the dashboard.
func (h *OrderHandler) TodayStats(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	stats, err := store.Orders().TodayStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
