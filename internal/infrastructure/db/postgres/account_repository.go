package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/redtable/pos-system/internal/core/domain"
)

// AccountRepository persists staff accounts. Every read projection excludes
// the password hash; it only ever flows through Authenticate's comparison.
type AccountRepository struct {
	conn *Conn
}

func NewAccountRepository(conn *Conn) *AccountRepository {
	return &AccountRepository{conn: conn}
}

func (r *AccountRepository) Create(ctx context.Context, username, password string, isAdmin, enabled bool) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := r.conn.InsertReturningID(ctx, `
		INSERT INTO users (username, password_hash, is_admin, enabled)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		username, string(hash), isAdmin, enabled)
	if errors.Is(err, domain.ErrConstraint) {
		return 0, fmt.Errorf("%w: %w", domain.ErrUserExists, err)
	}
	return id, err
}

// Authenticate looks the account up by username and verifies the password
// against the stored hash. Unknown username and hash mismatch both return
// (nil, nil) so callers cannot tell them apart.
func (r *AccountRepository) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	var acct domain.Account
	var hash string
	err := r.conn.FetchOne(ctx, `
		SELECT id, username, password_hash, is_admin, enabled
		FROM users
		WHERE username = $1`,
		func(row *sql.Row) error {
			return row.Scan(&acct.ID, &acct.Username, &hash, &acct.IsAdmin, &acct.Enabled)
		}, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, nil
	}
	return &acct, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *AccountRepository) getBy(ctx context.Context, where string, arg any) (*domain.Account, error) {
	var acct domain.Account
	err := r.conn.FetchOne(ctx,
		`SELECT id, username, is_admin, enabled FROM users WHERE `+where,
		func(row *sql.Row) error {
			return row.Scan(&acct.ID, &acct.Username, &acct.IsAdmin, &acct.Enabled)
		}, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.conn.FetchAll(ctx,
		`SELECT id, username, is_admin, enabled FROM users ORDER BY id`,
		func(rows *sql.Rows) error {
			var acct domain.Account
			if err := rows.Scan(&acct.ID, &acct.Username, &acct.IsAdmin, &acct.Enabled); err != nil {
				return err
			}
			accounts = append(accounts, acct)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
