// Package session holds who is signed in. A Session is created once at
// startup, loaded from the local store and passed to whatever needs the
// current user or token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v4"

	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

// Persisted keys. They are always written and cleared together.
const (
	KeyClient = "userClient"
	KeyToken  = "userToken"
)

// ErrNotSignedIn is returned by operations that need a current user
var ErrNotSignedIn = errors.New("not signed in: run 'taskdeck login' first")

// Store is the persistence the session needs
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, pairs map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Session is the application-scoped record of the signed-in client
type Session struct {
	mu     sync.RWMutex
	store  Store
	client *models.Client
	token  string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the clock used for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a signed-out session backed by store
func New(store Store, opts ...Option) *Session {
	s := &Session{store: store, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the session from the store. Missing keys leave it signed
// out. A value that does not parse, or a JWT that has expired, clears both
// keys.
func (s *Session) Load(ctx context.Context) error {
	rawClient, errClient := s.store.Get(ctx, KeyClient)
	rawToken, errToken := s.store.Get(ctx, KeyToken)
	for _, err := range []error{errClient, errToken} {
		if err != nil && !errors.Is(err, database.ErrKeyNotFound) {
			return fmt.Errorf("failed to read session: %w", err)
		}
	}
	if errClient != nil || errToken != nil {
		s.reset()
		return nil
	}

	var client models.Client
	var token string
	if err := sonic.ConfigStd.UnmarshalFromString(rawClient, &client); err != nil || !client.ID.Valid() {
		s.logger.Warn("discarding unreadable session", "key", KeyClient, "error", err)
		return s.SignOut(ctx)
	}
	if err := sonic.ConfigStd.UnmarshalFromString(rawToken, &token); err != nil || token == "" {
		s.logger.Warn("discarding unreadable session", "key", KeyToken, "error", err)
		return s.SignOut(ctx)
	}
	if expired(token, s.now()) {
		s.logger.Info("session token expired", "client_id", client.ID)
		return s.SignOut(ctx)
	}

	s.mu.Lock()
	s.client = &client
	s.token = token
	s.mu.Unlock()
	return nil
}

// expired reports whether token is a JWT whose exp claim is in the past.
// Tokens that are not JWTs never expire client-side.
func expired(token string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}

// SignIn persists client and token and makes them current
func (s *Session) SignIn(ctx context.Context, client models.Client, token string) error {
	rawClient, err := sonic.ConfigStd.MarshalToString(client)
	if err != nil {
		return fmt.Errorf("failed to encode client: %w", err)
	}
	rawToken, err := sonic.ConfigStd.MarshalToString(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := s.store.SetMany(ctx, map[string]string{KeyClient: rawClient, KeyToken: rawToken}); err != nil {
		return err
	}

	s.mu.Lock()
	s.client = &client
	s.token = token
	s.mu.Unlock()
	return nil
}

// UpdateUser replaces the cached profile, keeping the token
func (s *Session) UpdateUser(ctx context.Context, client models.Client) error {
	token := s.Token()
	if token == "" {
		return ErrNotSignedIn
	}
	return s.SignIn(ctx, client, token)
}

// SignOut clears both keys and the in-memory user
func (s *Session) SignOut(ctx context.Context) error {
	s.reset()
	return s.store.Delete(ctx, KeyClient, KeyToken)
}

func (s *Session) reset() {
	s.mu.Lock()
	s.client = nil
	s.token = ""
	s.mu.Unlock()
}

// Token returns the bearer token, or "" when signed out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Client returns the current user
func (s *Session) Client() (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		return models.Client{}, false
	}
	return *s.client, true
}

// RequireClient returns the current user or ErrNotSignedIn
func (s *Session) RequireClient() (models.Client, error) {
	c, ok := s.Client()
	if !ok {
		return models.Client{}, ErrNotSignedIn
	}
	return c, nil
}

// SignedIn reports whether a user is current
func (s *Session) SignedIn() bool {
	_, ok := s.Client()
	return ok
}
