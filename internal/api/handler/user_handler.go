package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/redtable/pos-system/internal/core/domain"
)

// UserHandler exposes session introspection and the admin account surface.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type currentUserResponse struct {
	Type string          `json:"type"`
	Data *domain.Session `json:"data,omitempty"`
}

// Current returns the caller's own session record.
func (h *UserHandler) Current(c echo.Context) error {
	sess := requestSession(c)
	if sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"type":    "unauthorized",
			"message": "user not logged in",
		})
	}
	return c.JSON(http.StatusOK, currentUserResponse{Type: "success", Data: sess})
}

type createAccountRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"is_admin"`
	Enabled  *bool  `json:"enabled"`
}

// ListAccounts returns every account, hashes excluded. Admin only.
func (h *UserHandler) ListAccounts(c echo.Context) error {
	store, err := requestStore(c)
	if err != nil {
		return err
	}
	accounts, err := store.Accounts().ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return c.JSON(http.StatusOK, accounts)
}

// CreateAccount registers a staff account. Admin only.
func (h *UserHandler) CreateAccount(c echo.Context) error {
	var req createAccountRequest
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

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	id, err := store.Accounts().Create(c.Request().Context(), req.Username, req.Password, req.IsAdmin, enabled)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}
