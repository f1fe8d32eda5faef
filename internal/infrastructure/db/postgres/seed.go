package postgres

import (
	"context"

	"github.com/rs/zerolog"
)

// SeedDemoData inserts the demo accounts when the users table is still
// empty. Intended for development and test environments only; production
// deployments create accounts through the admin surface.
func SeedDemoData(ctx context.Context, db *DB, logger zerolog.Logger) error {
	store := db.NewStore()
	defer store.Release()

	existing, err := store.Accounts().ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seeds := []struct {
		username, password string
		isAdmin, enabled   bool
	}{
		{"admin", "123456", true, true},
		{"waiter1", "w123456", false, true},
		{"banned1", "c123456", false, false},
	}
	for _, s := range seeds {
		if _, err := store.Accounts().Create(ctx, s.username, s.password, s.isAdmin, s.enabled); err != nil {
			return err
		}
	}

	if err := store.Commit(); err != nil {
		return err
	}
	logger.Info().Int("accounts", len(seeds)).Msg("seeded demo accounts")
	return nil
}
