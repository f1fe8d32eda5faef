package ports

import (
	"context"

	"github.com/redtable/pos-system/internal/core/domain"
)

// AccountRepository defines persistence operations for staff accounts.
type AccountRepository interface {
	// Create stores a new account with a one-way hash of password and returns
	// the new id. A taken username yields domain.ErrConstraint.
	Create(ctx context.Context, username, password string, isAdmin, enabled bool) (int64, error)

	// Authenticate verifies username/password against the stored hash.
	// Unknown username and wrong password are indistinguishable to the caller:
	// both return (nil, nil). The returned account never carries the hash.
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)

	// GetByID and GetByUsername return projections without the password hash,
	// or domain.ErrAccountNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	ListAll(ctx context.Context) ([]domain.Account, error)
}
