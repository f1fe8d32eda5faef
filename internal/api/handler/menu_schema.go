package handler

import "github.com/redtable/pos-system/internal/core/domain"

type createDishRequest struct {
	Name        string         `json:"name"         validate:"required"`
	Price       int64          `json:"price"        validate:"gte=0"`
	Category    string         `json:"category"     validate:"required"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	IsAvailable *bool          `json:"is_available"`
	Options     map[string]any `json:"options"`
}

// updateDishRequest mirrors domain.DishPatch at the transport boundary:
// absent JSON fields stay nil and are left untouched by the update.
type updateDishRequest struct {
	Name        *string        `json:"name"`
	Price       *int64         `json:"price"        validate:"omitempty,gte=0"`
	Category    *string        `json:"category"`
	Description *string        `json:"description"`
	ImageURL    *string        `json:"image_url"`
	IsAvailable *bool          `json:"is_available"`
	Options     map[string]any `json:"options"`
}

func (r updateDishRequest) patch() domain.DishPatch {
	return domain.DishPatch{
		Name:        r.Name,
		Price:       r.Price,
		Category:    r.Category,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		IsAvailable: r.IsAvailable,
		Options:     r.Options,
	}
}

type setAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}
