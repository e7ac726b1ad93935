// Package session holds the kiosk's sign-in state: the upstream bearer
// token and a few profile identifiers. Values are flat string keys,
// set at login and cleared at logout, optionally persisted to a file so
// the kiosk survives a restart without re-authenticating.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Well-known keys.
const (
	KeyToken    = "token"
	KeyUserID   = "userId"
	KeyUsername = "username"
	KeyRole     = "role"
)

// Store is a concurrency-safe flat key-value store. A zero path keeps
// the store memory-only.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewStore creates a store backed by the given file. An empty path
// disables persistence. A missing file is not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return s, nil
}

func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flushLocked()
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flushLocked()
}

// Clear wipes the whole session. Used at logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	return s.flushLocked()
}

// Token returns the stored bearer token, empty when signed out.
func (s *Store) Token() string {
	return s.Get(KeyToken)
}

// SetLogin records the token and profile identifiers in one call.
func (s *Store) SetLogin(token, userID, username, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[KeyToken] = token
	s.values[KeyUserID] = userID
	s.values[KeyUsername] = username
	s.values[KeyRole] = role
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
