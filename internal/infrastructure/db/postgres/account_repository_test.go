package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/redtable/pos-system/internal/core/domain"
)

func newMockAccountRepo(t *testing.T) (*AccountRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock := newMockConn(t)
	return NewAccountRepository(conn), mock
}

func TestAccountRepository_Create_StoresHashNotPlaintext(t *testing.T) {
	repo, mock := newMockAccountRepo(t)

	var storedHash string
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("waiter1", hashCapture{t, "w123456", &storedHash}, false, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

	id, err := repo.Create(context.Background(), "waiter1", "w123456", false, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 2 {
		t.Fatalf("expected id 2, got %d", id)
	}
	if storedHash == "w123456" {
		t.Fatalf("plaintext password written to storage")
	}
	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("w123456")) != nil {
		t.Fatalf("stored value is not a valid hash of the password")
	}
}

func TestAccountRepository_Create_DuplicateUsername(t *testing.T) {
	repo, mock := newMockAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), "waiter1", "w123456", false, true)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if !errors.Is(err, domain.ErrConstraint) {
		t.Fatalf("duplicate must still match ErrConstraint, got %v", err)
	}
}

// hashCapture matches any string argument, records it, and verifies it is
// not the given plaintext.
type hashCapture struct {
	t         *testing.T
	plaintext string
	dest      *string
}

func (h hashCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	*h.dest = s
	return s != h.plaintext
}

func TestAccountRepository_Authenticate(t *testing.T) {
	repo, mock := newMockAccountRepo(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("w123456"), bcrypt.MinCost)
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin", "enabled"}).
			AddRow(int64(2), "waiter1", string(hash), false, true)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, username, password_hash").
		WithArgs("waiter1").
		WillReturnRows(userRows())

	acct, err := repo.Authenticate(context.Background(), "waiter1", "w123456")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if acct == nil || acct.Username != "waiter1" {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if acct.PasswordHash != "" {
		t.Fatalf("returned account must not carry the hash")
	}

	// wrong password and unknown username are both a plain nil
	mock.ExpectQuery("SELECT id, username, password_hash").
		WithArgs("waiter1").
		WillReturnRows(userRows())
	if acct, err := repo.Authenticate(context.Background(), "waiter1", "wrong"); err != nil || acct != nil {
		t.Fatalf("wrong password: expected nil, nil; got %+v, %v", acct, err)
	}

	mock.ExpectQuery("SELECT id, username, password_hash").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin", "enabled"}))
	if acct, err := repo.Authenticate(context.Background(), "ghost", "w123456"); err != nil || acct != nil {
		t.Fatalf("unknown user: expected nil, nil; got %+v, %v", acct, err)
	}
}

func TestAccountRepository_ListAll_ExcludesHash(t *testing.T) {
	repo, mock := newMockAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, username, is_admin, enabled FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "is_admin", "enabled"}).
			AddRow(int64(1), "admin", true, true).
			AddRow(int64(2), "waiter1", false, true))

	accounts, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	for _, acct := range accounts {
		if acct.PasswordHash != "" {
			t.Fatalf("projection leaked a password hash: %+v", acct)
		}
	}
}
