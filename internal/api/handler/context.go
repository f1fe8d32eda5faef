package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/redtable/pos-system/internal/api/middleware"
	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

// requestStore returns the request-scoped Store injected by the transaction
// middleware. Its absence means the route was wired outside the transaction
// group, which is a deployment bug, not a client error.
func requestStore(c echo.Context) (ports.Store, error) {
	store := middleware.StoreFrom(c)
	if store == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "no request store")
	}
	return store, nil
}

// requestSession returns the caller's session, nil when anonymous.
func requestSession(c echo.Context) *domain.Session {
	return middleware.SessionFrom(c)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
