package domain

// Dish is a menu item. Price is held in minor currency units (cents) so all
// arithmetic stays integral; display values are derived by dividing by 100
// and are never stored pre-divided.
type Dish struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Price       int64          `json:"price"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	IsAvailable bool           `json:"is_available"`
	Options     map[string]any `json:"options"`
}

// DishPatch is a partial update of a dish. Each updatable column has exactly
// one optional field; a nil field means "leave unchanged". Keeping the
// allow-list in the type makes an out-of-list update unrepresentable.
type DishPatch struct {
	Name        *string
	Price       *int64
	Category    *string
	Description *string
	ImageURL    *string
	IsAvailable *bool
	Options     map[string]any
}

// Empty reports whether the patch carries no fields at all.
func (p DishPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil &&
		p.Description == nil && p.ImageURL == nil && p.IsAvailable == nil &&
		p.Options == nil
}

// MenuEntry is the presentation-shaped projection of a dish used by the
// grouped menu view. Price is in major units (yuan/dollars), ready to render.
type MenuEntry struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Options     map[string]any `json:"options"`
}

// CategoryCount is one row of the per-category dish tally.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriceRange summarises dish prices in major currency units.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}
