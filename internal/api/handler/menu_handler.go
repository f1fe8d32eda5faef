package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/redtable/pos-system/internal/api/metrics"
	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

// MenuHandler exposes the menu surface: public reads for the ordering UI and
// admin-gated writes for menu management.
type MenuHandler struct{}

func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

// GetMenu returns the grouped, presentation-shaped menu.
func (h *MenuHandler) GetMenu(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	menu, err := store.Dishes().GroupedMenu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// ListDishes returns the flat dish list ordered by category then id.
// ?category= filters to one category; ?all=true includes unavailable dishes
// for the menu management view.
func (h *MenuHandler) ListDishes(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var dishes []domain.Dish
	if category := c.QueryParam("category"); category != "" {
		dishes, err = store.Dishes().ListByCategory(ctx, category)
	} else {
		dishes, err = store.Dishes().ListAll(ctx, c.QueryParam("all") == "true")
	}
	if err != nil {
		return err
	}
	if dishes == nil {
		dishes = []domain.Dish{}
	}
	return c.JSON(http.StatusOK, dishes)
}

func (h *MenuHandler) ListCategories(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	categories, err := store.Dishes().ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}

// Search matches available dishes by name keyword (?q=).
func (h *MenuHandler) Search(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	dishes, err := store.Dishes().Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	if dishes == nil {
		dishes = []domain.Dish{}
	}
	return c.JSON(http.StatusOK, dishes)
}

func (h *MenuHandler) GetDish(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	dish, err := store.Dishes().GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if dish == nil {
		return domain.ErrDishNotFound
	}
	return c.JSON(http.StatusOK, dish)
}

func (h *MenuHandler) CreateDish(c echo.Context) error {
	var req createDishRequest
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

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	id, err := store.Dishes().Create(c.Request().Context(), ports.CreateDishInput{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
		Options:     req.Options,
	})
	if err != nil {
		return err
	}

	metrics.DishMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

func (h *MenuHandler) UpdateDish(c echo.Context) error {
	var req updateDishRequest
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
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := store.Dishes().Update(c.Request().Context(), id, req.patch()); err != nil {
		return err
	}
	metrics.DishMutationsTotal.WithLabelValues("update").Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *MenuHandler) DeleteDish(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.Dishes().Delete(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.DishMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *MenuHandler) SetAvailability(c echo.Context) error {
	var req setAvailabilityRequest
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
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := store.Dishes().SetAvailability(c.Request().Context(), id, *req.IsAvailable); err != nil {
		return err
	}
	metrics.DishMutationsTotal.WithLabelValues("availability").Inc()
	return c.NoContent(http.StatusNoContent)
}

// CategoryStats tallies available dishes per category.
func (h *MenuHandler) CategoryStats(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	counts, err := store.Dishes().CountByCategory(c.Request().Context())
	if err != nil {
		return err
	}
	if counts == nil {
		counts = []domain.CategoryCount{}
	}
	return c.JSON(http.StatusOK, counts)
}

// PriceRange reports min/max/avg prices in major units, optionally scoped to
// ?category=.
func (h *MenuHandler) PriceRange(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	pr, err := store.Dishes().PriceRange(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pr)
}
