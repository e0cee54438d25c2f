package api

import (
	"fmt"
	"sync"

	"github.com/nocturnedev/lantern/internal/models"
)

// TokenKey is the fixed storage key under which the session token persists.
const TokenKey = "session_token"

// TokenStore persists the opaque session token between runs.
//
// Load returns an empty string (not an error) when no token is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryTokenStore is an in-process TokenStore, used when no database is
// configured and in tests.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokenStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// Session owns the bearer credential for one client. The token is created
// on login, read on every request, and cleared on logout or on any
// credential-category failure. There is no global token state.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.User
	store TokenStore
}

// NewSession creates a Session backed by store, loading any previously
// persisted token. A nil store falls back to in-memory storage.
func NewSession(store TokenStore) (*Session, error) {
	if store == nil {
		store = &MemoryTokenStore{}
	}

	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}

	return &Session{token: token, store: store}, nil
}

// Token returns the current session token, empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a session token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// User returns the profile captured at login, nil when unknown.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetToken stores the token and login profile, persisting the token.
func (s *Session) SetToken(token string, user *models.User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	return nil
}

// SetUser updates the cached profile without touching the token.
func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Clear drops the token and profile, locally invalidating the session
// without contacting the server.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
