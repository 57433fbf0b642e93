package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/suPer8Hu/gopherchat/internal/logging"
)

// Session is the client's view of the login token. The API client reads the
// token from it on every request; only login writes it and only logout
// removes it, apart from Init discarding a token it cannot read.
type Session struct {
	Log zerolog.Logger

	store Store
	key   string

	mu    sync.RWMutex
	token string
}

func New(store Store, key string) *Session {
	if key == "" {
		key = "token"
	}
	return &Session{Log: logging.L(), store: store, key: key}
}

// Init loads the persisted token, if any. A token that can't be unsealed
// is deleted and the session starts logged out.
func (s *Session) Init(ctx context.Context) error {
	tok, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			s.set("")
			return nil
		}
		if errors.Is(err, ErrUnsealable) {
			s.Log.Warn().Err(err).Msg("discarding unreadable stored token")
			s.set("")
			if err := s.store.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNoToken) {
				return fmt.Errorf("discard token: %w", err)
			}
			return nil
		}
		return fmt.Errorf("load token: %w", err)
	}
	s.set(tok)
	return nil
}

// Update persists a freshly issued token.
func (s *Session) Update(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session: empty token")
	}
	if err := s.store.Set(ctx, s.key, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.set(token)
	return nil
}

// Clear drops the token from memory even if the store delete fails.
func (s *Session) Clear(ctx context.Context) error {
	s.set("")
	if err := s.store.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNoToken) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Expired reports whether the token is a JWT whose exp is before now.
// Opaque tokens never expire from the client's point of view.
func (s *Session) Expired(now time.Time) bool {
	tok := s.Token()
	if tok == "" {
		return false
	}
	c, ok := ParseClaims(tok)
	if !ok || c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}

func (s *Session) set(tok string) {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}
