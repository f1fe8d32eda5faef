package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/redtable/pos-system/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func (s *stubSessionStore) Create(_ context.Context, sess domain.Session) error {
	if s.sessions == nil {
		s.sessions = make(map[string]*domain.Session)
	}
	s.sessions[sess.ID] = &sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func signSessionToken(t *testing.T, key, sid string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSessionGate_AnonymousRedirected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/today", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Session("secret", &stubSessionStore{}, nil, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("next should not be called for anonymous caller")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestSessionGate_AllowListedPaths(t *testing.T) {
	paths := []string{
		"/login",
		"/api/auth/login",
		"/static/logo.png",
		"/health",
		"/health/ready",
		"/metrics",
	}
	for _, path := range paths {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		mw := Session("secret", &stubSessionStore{}, nil, zerolog.Nop())
		handler := mw(func(c echo.Context) error {
			called = true
			if SessionFrom(c) != nil {
				t.Fatalf("%s: expected anonymous session", path)
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("%s: handler error: %v", path, err)
		}
		if !called {
			t.Fatalf("%s: next not called for allow-listed path", path)
		}
	}
}

func TestSessionGate_ValidCookiePassesThrough(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]*domain.Session{
		"abc123": {ID: "abc123", AccountID: 7, Username: "waiter1"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/today", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSessionToken(t, "secret", "abc123")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("secret", store, nil, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		sess := SessionFrom(c)
		if sess == nil {
			t.Fatalf("session not injected")
		}
		if sess.Username != "waiter1" || sess.AccountID != 7 {
			t.Fatalf("wrong session: %+v", sess)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGate_StaleCookieIsAnonymous(t *testing.T) {
	// Token is validly signed but the server-side record is gone (logout or
	// TTL expiry). The caller must be treated as anonymous.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/today", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSessionToken(t, "secret", "gone")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("secret", &stubSessionStore{}, nil, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 for stale cookie, got %d", rec.Code)
	}
}

func TestSessionGate_ForgedCookieIsAnonymous(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]*domain.Session{
		"abc123": {ID: "abc123", Username: "waiter1"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/today", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSessionToken(t, "wrong-key", "abc123")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("secret", store, nil, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 for forged cookie, got %d", rec.Code)
	}
}

func TestPathAllowed(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/login", true},
		{"/static/css/site.css", true},
		{"/api/auth/login", true},
		{"/api/auth/logout", false},
		{"/api/orders", false},
		{"/", false},
	}
	for _, tc := range cases {
		if got := PathAllowed(tc.path, DefaultAllowList); got != tc.want {
			t.Errorf("PathAllowed(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestAdmin_ForbidsNonAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/menu/dishes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionKey, &domain.Session{ID: "s1", Username: "waiter1", IsAdmin: false})

	called := false
	handler := Admin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("next should not be called for non-admin")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAdmin_AllowsAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/menu/dishes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionKey, &domain.Session{ID: "s1", Username: "admin", IsAdmin: true})

	called := false
	handler := Admin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for admin")
	}
}
