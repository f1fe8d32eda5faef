package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "pos_session"

// sessionKey is the echo context key under which the loaded session is set.
const sessionKey = "session"

// DefaultAllowList contains the paths reachable without a session: the login
// page, the login API endpoint, static assets, and the operational probes.
var DefaultAllowList = []string{
	"/login",
	"/api/auth/login",
	"/static/",
	"/health",
	"/metrics",
}

// PathAllowed reports whether path may be served to an anonymous caller.
func PathAllowed(path string, allowList []string) bool {
	for _, prefix := range allowList {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Session is the authorization gate. It resolves the caller's session from
// the signed cookie and injects it into the request context; requests without
// a session are redirected to the login page unless the path is on the
// allow-list. It runs before every handler.
func Session(signingKey string, sessions ports.SessionStore, allowList []string, log zerolog.Logger) echo.MiddlewareFunc {
	if allowList == nil {
		allowList = DefaultAllowList
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess := loadSession(c, signingKey, sessions, log); sess != nil {
				c.Set(sessionKey, sess)
				return next(c)
			}

			if PathAllowed(c.Request().URL.Path, allowList) {
				return next(c)
			}
			return c.Redirect(http.StatusSeeOther, "/login")
		}
	}
}

// SessionFrom returns the session injected by the gate, or nil for an
// anonymous caller.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionKey).(*domain.Session)
	return sess
}

// loadSession verifies the cookie token and resolves its session id against
// the server-side store. Any failure along the way means anonymous: a stale
// or forged cookie is not an error worth surfacing.
func loadSession(c echo.Context, signingKey string, sessions ports.SessionStore, log zerolog.Logger) *domain.Session {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(signingKey), nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil
	}

	sess, err := sessions.Get(c.Request().Context(), sid)
	if err != nil {
		if err != domain.ErrSessionNotFound {
			log.Warn().Err(err).Msg("session lookup failed")
		}
		return nil
	}
	return sess
}
