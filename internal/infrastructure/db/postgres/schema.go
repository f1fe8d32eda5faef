package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// statements are applied in order at startup; all are idempotent.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		enabled       BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS menu (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		price        BIGINT NOT NULL CHECK (price >= 0),
		category     TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		image_url    TEXT NOT NULL DEFAULT '',
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		options_json JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          BIGSERIAL PRIMARY KEY,
		order_num   INTEGER NOT NULL,
		table_num   INTEGER NOT NULL,
		items_json  JSONB NOT NULL,
		total_price BIGINT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending',
		time        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// safety net behind the per-day counter: two orders can never share a
	// number within one calendar day
	`CREATE UNIQUE INDEX IF NOT EXISTS orders_day_num
		ON orders ((time::date), order_num)`,
	`CREATE TABLE IF NOT EXISTS order_counters (
		day      DATE PRIMARY KEY,
		next_num INTEGER NOT NULL
	)`,
}

// Migrate creates the schema. It runs outside the per-request transaction
// discipline, once at startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
