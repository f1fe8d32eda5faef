package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/pkg/logger"
)

type stubAccountRepo struct {
	accounts map[string]domain.Account // keyed by username, value carries the cleartext in PasswordHash
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *stubAccountRepo) seed(username, password string, isAdmin, enabled bool) {
	r.accounts[username] = domain.Account{
		ID:           int64(len(r.accounts) + 1),
		Username:     username,
		PasswordHash: password,
		IsAdmin:      isAdmin,
		Enabled:      enabled,
	}
}

func (r *stubAccountRepo) Create(_ context.Context, username, password string, isAdmin, enabled bool) (int64, error) {
	if _, exists := r.accounts[username]; exists {
		return 0, domain.ErrConstraint
	}
	r.seed(username, password, isAdmin, enabled)
	return r.accounts[username].ID, nil
}

func (r *stubAccountRepo) Authenticate(_ context.Context, username, password string) (*domain.Account, error) {
	acct, ok := r.accounts[username]
	if !ok || acct.PasswordHash != password {
		return nil, nil
	}
	out := acct
	out.PasswordHash = ""
	return &out, nil
}

func (r *stubAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	for _, acct := range r.accounts {
		if acct.ID == id {
			out := acct
			out.PasswordHash = ""
			return &out, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	acct, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := acct
	out.PasswordHash = ""
	return &out, nil
}

func (r *stubAccountRepo) ListAll(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, acct := range r.accounts {
		acct.PasswordHash = ""
		out = append(out, acct)
	}
	return out, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestAuthService(sessions *stubSessionStore) *AuthService {
	return NewAuthService(sessions, "test-secret", time.Hour, logger.Init(logger.Options{Level: "error"}))
}

func TestAuthService_Login_Success(t *testing.T) {
	accounts := newStubAccountRepo()
	accounts.seed("waiter1", "w123456", false, true)
	sessions := newStubSessionStore()
	svc := newTestAuthService(sessions)

	res, err := svc.Login(context.Background(), accounts, nil, "waiter1", "w123456")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if res.Outcome != domain.AuthSuccess {
		t.Fatalf("expected success, got %s", res.Outcome)
	}
	if res.Token == "" {
		t.Fatalf("expected signed token, got empty")
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected one stored session, got %d", len(sessions.sessions))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	sid, _ := claims["sid"].(string)
	sess, err := sessions.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("token sid does not resolve to a stored session: %v", err)
	}
	if sess.Username != "waiter1" || sess.IsAdmin {
		t.Fatalf("unexpected session record: %+v", sess)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	accounts := newStubAccountRepo()
	accounts.seed("waiter1", "w123456", false, true)
	svc := newTestAuthService(newStubSessionStore())

	for _, tc := range []struct{ username, password string }{
		{"", "w123456"},
		{"waiter1", ""},
		{"", ""},
	} {
		res, err := svc.Login(context.Background(), accounts, nil, tc.username, tc.password)
		if err != nil {
			t.Fatalf("login returned error: %v", err)
		}
		if res.Outcome != domain.AuthNoneError {
			t.Fatalf("login(%q, %q): expected none_error, got %s", tc.username, tc.password, res.Outcome)
		}
	}
}

func TestAuthService_Login_AlreadyLoggedIn(t *testing.T) {
	accounts := newStubAccountRepo()
	accounts.seed("waiter1", "w123456", false, true)
	svc := newTestAuthService(newStubSessionStore())

	current := &domain.Session{ID: "abc", AccountID: 1, Username: "waiter1"}
	res, err := svc.Login(context.Background(), accounts, current, "waiter1", "w123456")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if res.Outcome != domain.AuthDuplicateError {
		t.Fatalf("expected duplicate_error, got %s", res.Outcome)
	}
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	accounts := newStubAccountRepo()
	accounts.seed("waiter1", "w123456", false, true)
	svc := newTestAuthService(newStubSessionStore())

	res, _ := svc.Login(context.Background(), accounts, nil, "waiter1", "nope")
	if res.Outcome != domain.AuthError {
		t.Fatalf("wrong password: expected auth_error, got %s", res.Outcome)
	}

	res, _ = svc.Login(context.Background(), accounts, nil, "ghost", "nope")
	if res.Outcome != domain.AuthError {
		t.Fatalf("unknown user: expected auth_error, got %s", res.Outcome)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	accounts := newStubAccountRepo()
	accounts.seed("banned1", "c123456", false, false)
	sessions := newStubSessionStore()
	svc := newTestAuthService(sessions)

	// the repository itself authenticates the credentials
	acct, err := accounts.Authenticate(context.Background(), "banned1", "c123456")
	if err != nil || acct == nil {
		t.Fatalf("expected repository-level authentication to pass, got %v %v", acct, err)
	}

	// but the gate maps the disabled flag to banned_error
	res, err := svc.Login(context.Background(), accounts, nil, "banned1", "c123456")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if res.Outcome != domain.AuthBannedError {
		t.Fatalf("expected banned_error, got %s", res.Outcome)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("no session must be created for a banned account")
	}
}

func TestAuthService_Logout(t *testing.T) {
	sessions := newStubSessionStore()
	svc := newTestAuthService(sessions)

	sess := domain.Session{ID: "abc", AccountID: 1, Username: "waiter1"}
	_ = sessions.Create(context.Background(), sess)

	outcome, err := svc.Logout(context.Background(), &sess)
	if err != nil {
		t.Fatalf("logout returned error: %v", err)
	}
	if outcome != domain.AuthSuccess {
		t.Fatalf("expected success, got %s", outcome)
	}
	if _, err := sessions.Get(context.Background(), "abc"); err != domain.ErrSessionNotFound {
		t.Fatalf("session should be destroyed, got %v", err)
	}

	outcome, err = svc.Logout(context.Background(), nil)
	if err != nil {
		t.Fatalf("logout returned error: %v", err)
	}
	if outcome != domain.AuthNoneError {
		t.Fatalf("anonymous logout: expected none_error, got %s", outcome)
	}
}
