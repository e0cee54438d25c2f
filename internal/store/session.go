package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nocturnedev/lantern/internal/api"
)

var _ api.TokenStore = (*SessionStore)(nil)

// SessionStore persists the session token in the sessions table under a
// fixed key, implementing [api.TokenStore].
type SessionStore struct {
	db  *sql.DB
	key string
}

// NewSessionStore creates a SessionStore using the fixed [api.TokenKey].
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db, key: api.TokenKey}
}

// Load returns the stored token, or an empty string when none is stored.
func (s *SessionStore) Load() (string, error) {
	var token string
	err := s.db.QueryRow("SELECT token FROM sessions WHERE key = ?", s.key).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session token: %w", err)
	}
	return token, nil
}

// Save upserts the token under the fixed key.
func (s *SessionStore) Save(token string) error {
	query := `
		INSERT INTO sessions (key, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, s.key, token, time.Now()); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// Clear deletes the stored token.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
