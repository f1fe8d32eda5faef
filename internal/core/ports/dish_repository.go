package ports

import (
	"context"

	"github.com/redtable/pos-system/internal/core/domain"
)

// CreateDishInput carries all columns of a new dish. Price is in minor
// currency units.
type CreateDishInput struct {
	Name        string
	Price       int64
	Category    string
	Description string
	ImageURL    string
	IsAvailable bool
	Options     map[string]any
}

// DishRepository defines persistence operations for menu items.
type DishRepository interface {
	Create(ctx context.Context, in CreateDishInput) (int64, error)

	// GetByID returns (nil, nil) when the dish does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Dish, error)

	// Update patches the fields set on patch. An empty patch returns
	// domain.ErrEmptyPatch without touching storage.
	Update(ctx context.Context, id int64, patch domain.DishPatch) error

	// Delete physically removes a dish; deleting an absent id is a no-op.
	Delete(ctx context.Context, id int64) error

	// SetAvailability is a convenience wrapper over Update.
	SetAvailability(ctx context.Context, id int64, available bool) error

	// ListAll returns dishes ordered by category then id.
	ListAll(ctx context.Context, includeUnavailable bool) ([]domain.Dish, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Dish, error)
	// ListCategories returns the distinct categories of available dishes, sorted.
	ListCategories(ctx context.Context) ([]string, error)

	// GroupedMenu maps category to presentation-shaped entries over the
	// available dishes.
	GroupedMenu(ctx context.Context) (map[string][]domain.MenuEntry, error)

	// Search matches available dishes whose name contains keyword.
	Search(ctx context.Context, keyword string) ([]domain.Dish, error)

	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	// PriceRange reports min/max/avg in major currency units; category may be
	// empty to cover the whole menu.
	PriceRange(ctx context.Context, category string) (domain.PriceRange, error)
}
