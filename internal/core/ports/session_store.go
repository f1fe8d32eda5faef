package ports

import (
	"context"

	"github.com/redtable/pos-system/internal/core/domain"
)

// SessionStore keeps authenticated sessions server-side. Sessions are
// ephemeral: they are never written to the database and expire on their own.
type SessionStore interface {
	Create(ctx context.Context, sess domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
}
