// Package session is the durable client-storage analog: a tiny file-backed
// key-value store remembering the logged-in user and UI preferences across
// restarts.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Well-known keys.
const (
	KeyCurrentUser = "current_user"
	KeyThemeMode   = "theme_mode"
)

type Store struct {
	path string
	mu   sync.Mutex
	data map[string]string
}

// Open loads the session file, starting empty when it does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the stored value, or "" when the key is unset.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flush()
}

// flush rewrites the session file. Callers hold s.mu.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
