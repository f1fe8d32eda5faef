package ports

import (
	"context"

	"github.com/redtable/pos-system/internal/core/domain"
)

// LoginResult is the outcome of a login attempt. Token is the signed session
// token to hand to the client, set only when Outcome is domain.AuthSuccess.
type LoginResult struct {
	Outcome domain.AuthOutcome
	Token   string
}

// AuthService implements the session lifecycle of the authorization gate.
// Authentication outcomes are returned values; the error return is reserved
// for infrastructure failures (session store, storage).
type AuthService interface {
	// Login authenticates against the accounts repository of the current
	// request. current is the caller's session, nil when anonymous.
	Login(ctx context.Context, accounts AccountRepository, current *domain.Session, username, password string) (LoginResult, error)

	// Logout destroys the caller's session; anonymous callers get
	// domain.AuthNoneError.
	Logout(ctx context.Context, current *domain.Session) (domain.AuthOutcome, error)
}
