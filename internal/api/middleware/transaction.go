package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/redtable/pos-system/internal/core/ports"
	"github.com/redtable/pos-system/internal/infrastructure/db/postgres"
)

// storeKey is the echo context key under which the request Store is set.
const storeKey = "store"

// Transaction gives each request its own Store and settles its transaction
// by outcome: commit when the handler succeeds, rollback when it errors.
// Release runs on every exit path, panics included, via defer.
func Transaction(db *postgres.DB, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := db.NewStore()
			c.Set(storeKey, store)
			defer store.Release()

			if err := next(c); err != nil {
				if rbErr := store.Rollback(); rbErr != nil {
					log.Error().Err(rbErr).Msg("rollback failed")
				}
				return err
			}
			return store.Commit()
		}
	}
}

// StoreFrom returns the request Store injected by Transaction.
func StoreFrom(c echo.Context) ports.Store {
	store, _ := c.Get(storeKey).(ports.Store)
	return store
}
