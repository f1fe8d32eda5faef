package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/redtable/pos-system/internal/core/domain"
)

const defaultStmtTimeout = 5 * time.Second

// DB wraps the shared *sql.DB handle. It exists only to mint request-scoped
// Stores; no statement runs through it directly.
type DB struct {
	db          *sql.DB
	logger      zerolog.Logger
	stmtTimeout time.Duration
}

func NewDB(db *sql.DB, logger zerolog.Logger, stmtTimeout time.Duration) *DB {
	if stmtTimeout <= 0 {
		stmtTimeout = defaultStmtTimeout
	}
	return &DB{db: db, logger: logger, stmtTimeout: stmtTimeout}
}

// NewStore returns a fresh request-scoped Store. The caller owns its
// lifecycle: Commit or Rollback by outcome, Release exactly once at the end.
func (d *DB) NewStore() *Store {
	conn := &Conn{db: d.db, logger: d.logger, stmtTimeout: d.stmtTimeout}
	return newStore(conn)
}

// Conn owns one request's database transaction. It lazily begins the
// transaction on first use; all statements issued through it share that
// transaction until Commit, Rollback or Release ends it. A Conn must never
// be shared across requests.
type Conn struct {
	db          *sql.DB
	logger      zerolog.Logger
	stmtTimeout time.Duration

	tx       *sql.Tx
	finished bool // Commit or Rollback already applied
	released bool
}

// Acquire opens the transaction eagerly. Calling it on an already-connected
// handle warns and keeps the existing transaction.
func (c *Conn) Acquire(ctx context.Context) error {
	if c.tx != nil {
		c.logger.Warn().Msg("can't connect to database because it's already connected")
		return nil
	}
	return c.ensure(ctx)
}

// ensure begins the transaction if none is open yet.
func (c *Conn) ensure(ctx context.Context) error {
	if c.tx != nil {
		return nil
	}
	if c.released {
		return fmt.Errorf("connection already released: %w", domain.ErrStorage)
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	c.tx = tx
	c.finished = false
	c.logger.Debug().Msg("connected to database")
	return nil
}

// Commit applies the request's pending writes. Committing a handle that was
// never connected is a no-op with a warning.
func (c *Conn) Commit() error {
	if c.tx == nil || c.finished {
		c.logger.Warn().Msg("can't commit database because it's not connected")
		return nil
	}
	c.finished = true
	if err := c.tx.Commit(); err != nil {
		return wrapErr("commit", err)
	}
	return nil
}

// Rollback discards the request's pending writes. Rolling back a handle that
// was never connected is a no-op with a warning.
func (c *Conn) Rollback() error {
	if c.tx == nil || c.finished {
		c.logger.Warn().Msg("can't rollback database because it's not connected")
		return nil
	}
	c.finished = true
	if err := c.tx.Rollback(); err != nil {
		return wrapErr("rollback", err)
	}
	return nil
}

// Release ends the request's hold on the connection and marks the handle
// unusable. Pending writes that were neither committed nor rolled back are
// discarded. Releasing twice warns without failing.
func (c *Conn) Release() {
	if c.released {
		c.logger.Warn().Msg("can't close database because it's not connected")
		return
	}
	c.released = true
	if c.tx != nil && !c.finished {
		c.finished = true
		if err := c.tx.Rollback(); err != nil {
			c.logger.Error().Err(err).Msg("rollback on release failed")
		}
	}
	c.tx = nil
	c.logger.Debug().Msg("database connection closed")
}

// stmtCtx bounds a single statement with the configured timeout.
func (c *Conn) stmtCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.stmtTimeout)
}

// Exec runs a statement that returns no rows.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	sctx, cancel := c.stmtCtx(ctx)
	defer cancel()
	res, err := c.tx.ExecContext(sctx, query, args...)
	if err != nil {
		return nil, wrapErr("exec", err)
	}
	return res, nil
}

// FetchOne runs a single-row query. sql.ErrNoRows is returned unwrapped so
// callers can translate absence into their own semantics.
func (c *Conn) FetchOne(ctx context.Context, query string, scan func(*sql.Row) error, args ...any) error {
	if err := c.ensure(ctx); err != nil {
		return err
	}
	sctx, cancel := c.stmtCtx(ctx)
	defer cancel()
	if err := scan(c.tx.QueryRowContext(sctx, query, args...)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return wrapErr("fetch one", err)
	}
	return nil
}

// FetchAll runs a multi-row query, invoking each once per row.
func (c *Conn) FetchAll(ctx context.Context, query string, each func(*sql.Rows) error, args ...any) error {
	if err := c.ensure(ctx); err != nil {
		return err
	}
	sctx, cancel := c.stmtCtx(ctx)
	defer cancel()
	rows, err := c.tx.QueryContext(sctx, query, args...)
	if err != nil {
		return wrapErr("fetch all", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := each(rows); err != nil {
			return wrapErr("scan row", err)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("iterate rows", err)
	}
	return nil
}

// InsertReturningID runs an INSERT ... RETURNING id statement.
func (c *Conn) InsertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if err := c.ensure(ctx); err != nil {
		return 0, err
	}
	sctx, cancel := c.stmtCtx(ctx)
	defer cancel()
	var id int64
	if err := c.tx.QueryRowContext(sctx, query, args...).Scan(&id); err != nil {
		return 0, wrapErr("insert", err)
	}
	return id, nil
}

// wrapErr classifies driver errors into the domain taxonomy. Unique and
// foreign-key violations become ErrConstraint; everything else, including
// statement timeouts, becomes ErrStorage.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503":
			return fmt.Errorf("%s: %s: %w", op, pgErr.Message, domain.ErrConstraint)
		}
	}
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStorage)
}
