package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/redtable/pos-system/internal/core/domain"
	"github.com/redtable/pos-system/internal/core/ports"
)

// AuthService implements the session lifecycle of the authorization gate.
type AuthService struct {
	sessions   ports.SessionStore
	signingKey string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(sessions ports.SessionStore, signingKey string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &AuthService{sessions: sessions, signingKey: signingKey, sessionTTL: sessionTTL, logger: logger}
}

// Login runs the gate checks in order: empty fields, existing session,
// credentials, enabled flag. Only when all pass is a fresh session created
// and a signed token returned. Unknown username and wrong password produce
// the same outcome so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, accounts ports.AccountRepository, current *domain.Session, username, password string) (ports.LoginResult, error) {
	if username == "" || password == "" {
		return ports.LoginResult{Outcome: domain.AuthNoneError}, nil
	}
	if current != nil {
		return ports.LoginResult{Outcome: domain.AuthDuplicateError}, nil
	}

	acct, err := accounts.Authenticate(ctx, username, password)
	if err != nil {
		return ports.LoginResult{}, err
	}
	if acct == nil {
		s.logger.Info().Str("username", username).Msg("login rejected")
		return ports.LoginResult{Outcome: domain.AuthError}, nil
	}
	if !acct.Enabled {
		s.logger.Info().Str("username", username).Msg("login rejected: account disabled")
		return ports.LoginResult{Outcome: domain.AuthBannedError}, nil
	}

	sess := domain.Session{
		ID:        newSessionID(),
		AccountID: acct.ID,
		Username:  acct.Username,
		IsAdmin:   acct.IsAdmin,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return ports.LoginResult{}, err
	}

	token, err := s.signToken(sess.ID)
	if err != nil {
		_ = s.sessions.Destroy(ctx, sess.ID)
		return ports.LoginResult{}, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info().Str("username", acct.Username).Bool("is_admin", acct.IsAdmin).Msg("login success")
	return ports.LoginResult{Outcome: domain.AuthSuccess, Token: token}, nil
}

// Logout destroys the caller's session server-side, invalidating any token
// that still references it.
func (s *AuthService) Logout(ctx context.Context, current *domain.Session) (domain.AuthOutcome, error) {
	if current == nil {
		return domain.AuthNoneError, nil
	}
	if err := s.sessions.Destroy(ctx, current.ID); err != nil {
		return "", err
	}
	s.logger.Info().Str("username", current.Username).Msg("logout")
	return domain.AuthSuccess, nil
}

// signToken wraps the session id in a signed, expiring JWT so the cookie
// value cannot be forged. The server-side record in the session store stays
// authoritative: destroying it invalidates the token early.
func (s *AuthService) signToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.signingKey))
}

// newSessionID returns a random 128-bit hex identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: nanosecond timestamp, still unique enough per instance
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
