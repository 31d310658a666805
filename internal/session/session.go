package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voisa/voictl/internal/api"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusInitializing   Status = "INITIALIZING"
	StatusAnonymous      Status = "ANONYMOUS"
	StatusAuthenticating Status = "AUTHENTICATING"
	StatusAuthenticated  Status = "AUTHENTICATED"
)

// Authenticator is the slice of the API client the store needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.AuthPayload, error)
	Register(ctx context.Context, name, email, password string) (*api.AuthPayload, error)
}

// record is the persisted session: token and user travel as one unit,
// written together and cleared together.
type record struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// Store is the process-wide source of truth for "who is logged in". It is
// the single writer of the persisted state file; screens only observe.
type Store struct {
	path   string
	auth   Authenticator
	logger *slog.Logger

	mu     sync.RWMutex
	status Status
	token  string
	user   api.User
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(path string, auth Authenticator, opts ...Option) *Store {
	s := &Store{
		path:   path,
		auth:   auth,
		logger: slog.Default(),
		status: StatusInitializing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the session from the state file. A present record yields
// Authenticated without any network round trip; the token is trusted until a
// request comes back 401. Missing or unreadable state means Anonymous.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("unreadable session state, starting anonymous", "path", s.path, "error", err)
		}
		s.status = StatusAnonymous
		return
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("corrupt session state, starting anonymous", "path", s.path, "error", err)
		s.status = StatusAnonymous
		return
	}
	if rec.Token == "" {
		s.logger.Warn("session state has no token, starting anonymous", "path", s.path)
		s.status = StatusAnonymous
		return
	}

	s.token = rec.Token
	s.user = rec.User
	s.status = StatusAuthenticated
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns the cached identity of the authenticated user.
func (s *Store) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.status == StatusAuthenticated
}

// Token implements api.TokenSource. Empty while not authenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status != StatusAuthenticated {
		return ""
	}
	return s.token
}

// Login authenticates and, on success, persists token and user atomically.
// On failure nothing is persisted and the session returns to Anonymous.
func (s *Store) Login(ctx context.Context, email, password string) (api.User, error) {
	s.setStatus(StatusAuthenticating)

	payload, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.setStatus(StatusAnonymous)
		return api.User{}, err
	}
	return s.establish(payload), nil
}

// Register creates an account; the backend logs the new user in within the
// same round trip, so the result is handled exactly like a login.
func (s *Store) Register(ctx context.Context, name, email, password string) (api.User, error) {
	s.setStatus(StatusAuthenticating)

	payload, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		s.setStatus(StatusAnonymous)
		return api.User{}, err
	}
	return s.establish(payload), nil
}

func (s *Store) establish(payload *api.AuthPayload) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = payload.Token
	s.user = payload.User
	s.status = StatusAuthenticated

	if err := s.save(record{Token: payload.Token, User: payload.User}); err != nil {
		// The session is valid for this process either way; it just won't
		// survive a restart.
		s.logger.Warn("failed to persist session", "path", s.path, "error", err)
	}
	return payload.User
}

// Logout drops the session. Synchronous, no network call, never fails:
// state-file removal errors are logged and the in-memory session still
// clears.
func (s *Store) Logout() {
	s.clear("logout")
}

// Expire is the forced-logout transition for a rejected token. It reports
// whether it actually cleared anything, so the 401 policy runs exactly once
// no matter how many screens observe the same expiry.
func (s *Store) Expire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuthenticated {
		return false
	}
	s.drop("session expired")
	return true
}

func (s *Store) clear(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop(reason)
}

// drop clears memory and disk together. Caller holds the lock.
func (s *Store) drop(reason string) {
	s.token = ""
	s.user = api.User{}
	s.status = StatusAnonymous

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove session state", "path", s.path, "error", err)
	}
	s.logger.Debug("session cleared", "reason", reason)
}

func (s *Store) save(rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// TokenInfo is what an unverified peek at the bearer token reveals. It is
// display-only: the client never gates requests on it and never validates
// the token with the backend.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenInfo decodes the stored token's registered claims without verifying
// the signature. Opaque (non-JWT) tokens yield an error.
func (s *Store) TokenInfo() (TokenInfo, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return TokenInfo{}, errors.New("no session token")
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("decode token: %w", err)
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

func (s *Store) setStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}
