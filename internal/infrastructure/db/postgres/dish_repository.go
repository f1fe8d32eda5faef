package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

const dishColumns = "id, name, price, category, description, image_url, is_available, options_json"

// DishRepository persists menu items.
type DishRepository struct {
	conn *Conn
}

func NewDishRepository(conn *Conn) *DishRepository {
	return &DishRepository{conn: conn}
}

func (r *DishRepository) Create(ctx context.Context, in ports.CreateDishInput) (int64, error) {
	options := in.Options
	if options == nil {
		options = map[string]any{}
	}
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return 0, fmt.Errorf("encode options: %w", err)
	}

	return r.conn.InsertReturningID(ctx, `
		INSERT INTO menu (name, price, category, description, image_url, is_available, options_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		in.Name, in.Price, in.Category, in.Description, in.ImageURL, in.IsAvailable, optionsJSON)
}

func (r *DishRepository) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	var dish domain.Dish
	err := r.conn.FetchOne(ctx,
		`SELECT `+dishColumns+` FROM menu WHERE id = $1`,
		func(row *sql.Row) error { return scanDishRow(row, &dish) }, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// Update patches only the fields set on patch. The allow-list is the patch
// type itself; an empty patch fails without touching storage.
func (r *DishRepository) Update(ctx context.Context, id int64, patch domain.DishPatch) error {
	if patch.Empty() {
		return domain.ErrEmptyPatch
	}

	set := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.IsAvailable != nil {
		add("is_available", *patch.IsAvailable)
	}
	if patch.Options != nil {
		optionsJSON, err := json.Marshal(patch.Options)
		if err != nil {
			return fmt.Errorf("encode options: %w", err)
		}
		add("options_json", optionsJSON)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE menu SET %s WHERE id = $%d", joinSet(set), len(args))
	_, err := r.conn.Exec(ctx, query, args...)
	return err
}

func joinSet(set []string) string {
	out := set[0]
	for _, s := range set[1:] {
		out += ", " + s
	}
	return out
}

// Delete physically removes a dish. An absent id succeeds as a no-op.
func (r *DishRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM menu WHERE id = $1`, id)
	return err
}

func (r *DishRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	return r.Update(ctx, id, domain.DishPatch{IsAvailable: &available})
}

func (r *DishRepository) ListAll(ctx context.Context, includeUnavailable bool) ([]domain.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM menu WHERE is_available ORDER BY category, id`
	if includeUnavailable {
		query = `SELECT ` + dishColumns + ` FROM menu ORDER BY category, id`
	}
	return r.fetchDishes(ctx, query)
}

func (r *DishRepository) ListByCategory(ctx context.Context, category string) ([]domain.Dish, error) {
	return r.fetchDishes(ctx,
		`SELECT `+dishColumns+` FROM menu WHERE category = $1 AND is_available ORDER BY id`,
		category)
}

func (r *DishRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.conn.FetchAll(ctx,
		`SELECT DISTINCT category FROM menu WHERE is_available ORDER BY category`,
		func(rows *sql.Rows) error {
			var c string
			if err := rows.Scan(&c); err != nil {
				return err
			}
			categories = append(categories, c)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GroupedMenu shapes the available menu for presentation: dishes grouped by
// category, prices converted to major units.
func (r *DishRepository) GroupedMenu(ctx context.Context) (map[string][]domain.MenuEntry, error) {
	dishes, err := r.ListAll(ctx, false)
	if err != nil {
		return nil, err
	}

	menu := make(map[string][]domain.MenuEntry)
	for _, dish := range dishes {
		menu[dish.Category] = append(menu[dish.Category], domain.MenuEntry{
			ID:          dish.ID,
			Name:        dish.Name,
			Price:       float64(dish.Price) / 100,
			Description: dish.Description,
			Image:       dish.ImageURL,
			Options:     dish.Options,
		})
	}
	return menu, nil
}

func (r *DishRepository) Search(ctx context.Context, keyword string) ([]domain.Dish, error) {
	return r.fetchDishes(ctx,
		`SELECT `+dishColumns+` FROM menu WHERE name LIKE $1 AND is_available ORDER BY category, id`,
		"%"+keyword+"%")
}

func (r *DishRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	err := r.conn.FetchAll(ctx, `
		SELECT category, COUNT(*) FROM menu
		WHERE is_available
		GROUP BY category
		ORDER BY category`,
		func(rows *sql.Rows) error {
			var cc domain.CategoryCount
			if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
				return err
			}
			counts = append(counts, cc)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// PriceRange reports min/max/avg over available dishes in major units.
// Category narrows the scope when non-empty; an empty result set yields a
// zero range.
func (r *DishRepository) PriceRange(ctx context.Context, category string) (domain.PriceRange, error) {
	query := `SELECT MIN(price), MAX(price), AVG(price) FROM menu WHERE is_available`
	args := []any{}
	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}

	var min, max, avg sql.NullFloat64
	err := r.conn.FetchOne(ctx, query, func(row *sql.Row) error {
		return row.Scan(&min, &max, &avg)
	}, args...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.PriceRange{}, err
	}
	if !min.Valid {
		return domain.PriceRange{}, nil
	}
	return domain.PriceRange{
		Min: min.Float64 / 100,
		Max: max.Float64 / 100,
		Avg: avg.Float64 / 100,
	}, nil
}

func (r *DishRepository) fetchDishes(ctx context.Context, query string, args ...any) ([]domain.Dish, error) {
	var dishes []domain.Dish
	err := r.conn.FetchAll(ctx, query, func(rows *sql.Rows) error {
		var dish domain.Dish
		if err := scanDishRows(rows, &dish); err != nil {
			return err
		}
		dishes = append(dishes, dish)
		return nil
	}, args...)
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

func scanDishRow(row *sql.Row, dish *domain.Dish) error {
	var optionsJSON []byte
	if err := row.Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Category,
		&dish.Description, &dish.ImageURL, &dish.IsAvailable, &optionsJSON); err != nil {
		return err
	}
	return decodeOptions(optionsJSON, dish)
}

func scanDishRows(rows *sql.Rows, dish *domain.Dish) error {
	var optionsJSON []byte
	if err := rows.Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Category,
		&dish.Description, &dish.ImageURL, &dish.IsAvailable, &optionsJSON); err != nil {
		return err
	}
	return decodeOptions(optionsJSON, dish)
}

func decodeOptions(raw []byte, dish *domain.Dish) error {
	dish.Options = map[string]any{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &dish.Options); err != nil {
		return fmt.Errorf("decode options for dish %d: %w", dish.ID, err)
	}
	return nil
}
