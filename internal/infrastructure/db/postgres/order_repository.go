package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

// OrderRepository persists orders and implements the order-creation
// algorithm: daily sequential numbering plus frozen line-item snapshots.
type OrderRepository struct {
	conn *Conn
}

func NewOrderRepository(conn *Conn) *OrderRepository {
	return &OrderRepository{conn: conn}
}

// Create places a new order inside the request transaction.
//
// The per-day order number comes from an atomic upsert on order_counters:
// the first order of a day inserts the counter row at 1, every later one
// increments it under the row lock. Concurrent creators serialize on that
// lock, so numbers within a day are gapless and never repeat. The unique
// index on (date, order_num) backs this up at the schema level.
func (r *OrderRepository) Create(ctx context.Context, tableNum int, items []ports.OrderItemInput) (int64, error) {
	if len(items) == 0 {
		return 0, domain.ErrEmptyOrder
	}

	var orderNum int
	err := r.conn.FetchOne(ctx, `
		INSERT INTO order_counters (day, next_num)
		VALUES (CURRENT_DATE, 1)
		ON CONFLICT (day) DO UPDATE SET next_num = order_counters.next_num + 1
		RETURNING next_num`,
		func(row *sql.Row) error { return row.Scan(&orderNum) })
	if err != nil {
		return 0, err
	}

	dishes, err := r.resolveDishes(ctx, items)
	if err != nil {
		return 0, err
	}

	// freeze the snapshot in caller-supplied order; name and price are
	// copies taken at this instant
	lines := make([]domain.OrderLine, 0, len(items))
	var total int64
	for _, item := range items {
		dish, ok := dishes[item.DishID]
		if !ok {
			return 0, fmt.Errorf("dish %d: %w", item.DishID, domain.ErrDishNotFound)
		}
		lines = append(lines, domain.OrderLine{
			DishID:    dish.ID,
			Name:      dish.Name,
			UnitPrice: dish.Price,
			Quantity:  item.Quantity,
		})
		total += dish.Price * int64(item.Quantity)
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return 0, fmt.Errorf("encode order items: %w", err)
	}

	return r.conn.InsertReturningID(ctx, `
		INSERT INTO orders (order_num, table_num, items_json, total_price, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id`,
		orderNum, tableNum, itemsJSON, total)
}

// resolveDishes bulk-looks-up every referenced dish in one query. A missing
// id rejects the whole order: a partial order is a worse silent failure than
// a refused one.
func (r *OrderRepository) resolveDishes(ctx context.Context, items []ports.OrderItemInput) (map[int64]domain.Dish, error) {
	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if seen[item.DishID] {
			continue
		}
		seen[item.DishID] = true
		args = append(args, item.DishID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	dishes := make(map[int64]domain.Dish, len(args))
	err := r.conn.FetchAll(ctx,
		`SELECT id, name, price FROM menu WHERE id IN (`+strings.Join(placeholders, ",")+`)`,
		func(rows *sql.Rows) error {
			var dish domain.Dish
			if err := rows.Scan(&dish.ID, &dish.Name, &dish.Price); err != nil {
				return err
			}
			dishes[dish.ID] = dish
			return nil
		}, args...)
	if err != nil {
		return nil, err
	}

	for id := range seen {
		if _, ok := dishes[id]; !ok {
			return nil, fmt.Errorf("dish %d: %w", id, domain.ErrDishNotFound)
		}
	}
	return dishes, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := r.conn.FetchOne(ctx, `
		SELECT id, order_num, table_num, items_json, total_price, status, time
		FROM orders
		WHERE id = $1`,
		func(row *sql.Row) error { return scanOrderRow(row, &order) }, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListToday(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.conn.FetchAll(ctx, `
		SELECT id, order_num, table_num, items_json, total_price, status, time
		FROM orders
		WHERE time::date = CURRENT_DATE
		ORDER BY order_num`,
		func(rows *sql.Rows) error {
			var order domain.Order
			var itemsJSON []byte
			if err := rows.Scan(&order.ID, &order.OrderNum, &order.TableNum,
				&itemsJSON, &order.TotalPrice, &order.Status, &order.CreatedAt); err != nil {
				return err
			}
			if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
				return fmt.Errorf("decode items for order %d: %w", order.ID, err)
			}
			orders = append(orders, order)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus applies one step of the order state machine. The current row
// is locked so two concurrent transitions cannot both validate against the
// same starting status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, next domain.OrderStatus) error {
	var current domain.OrderStatus
	err := r.conn.FetchOne(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`,
		func(row *sql.Row) error { return row.Scan(&current) }, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if !current.CanTransitionTo(next) {
		return fmt.Errorf("%s -> %s: %w", current, next, domain.ErrInvalidTransition)
	}

	_, err = r.conn.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, next, id)
	return err
}

func (r *OrderRepository) TodayStats(ctx context.Context) (domain.DayStats, error) {
	var stats domain.DayStats
	err := r.conn.FetchOne(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0)
		FROM orders
		WHERE time::date = CURRENT_DATE`,
		func(row *sql.Row) error { return row.Scan(&stats.OrderCount, &stats.TotalSales) })
	if err != nil {
		return domain.DayStats{}, err
	}
	return stats, nil
}

func scanOrderRow(row *sql.Row, order *domain.Order) error {
	var itemsJSON []byte
	if err := row.Scan(&order.ID, &order.OrderNum, &order.TableNum,
		&itemsJSON, &order.TotalPrice, &order.Status, &order.CreatedAt); err != nil {
		return err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return fmt.Errorf("decode items for order %d: %w", order.ID, err)
	}
	return nil
}
