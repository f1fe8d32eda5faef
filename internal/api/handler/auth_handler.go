package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/redtable/pos-system/internal/api/metrics"
	"github.com/redtable/pos-system/internal/api/middleware"
	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

// AuthHandler exposes the login/logout API of the authorization gate.
type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authOutcomeResponse is the envelope for both login and logout. Auth
// failures are expected user-facing cases, so every outcome is a 200 with a
// typed body rather than an error status.
type authOutcomeResponse struct {
	Type    domain.AuthOutcome `json:"type"`
	Message string             `json:"message"`
}

// Login authenticates a staff member and establishes a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	store, err := requestStore(c)
	if err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), store.Accounts(), requestSession(c), req.Username, req.Password)
	if err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues(string(res.Outcome)).Inc()

	if res.Outcome == domain.AuthSuccess {
		c.SetCookie(h.sessionCookie(res.Token, h.cookieTTL))
	}
	return c.JSON(http.StatusOK, authOutcomeResponse{Type: res.Outcome, Message: res.Outcome.Message()})
}

// Logout destroys the caller's session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	outcome, err := h.authService.Logout(c.Request().Context(), requestSession(c))
	if err != nil {
		return err
	}

	msg := "logout success"
	if outcome == domain.AuthNoneError {
		msg = "user is not logged in"
	} else {
		c.SetCookie(h.sessionCookie("", -time.Hour))
	}
	return c.JSON(http.StatusOK, authOutcomeResponse{Type: outcome, Message: msg})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
