// ABOUTME: JSON-file preference store, the server-side shared-preferences file
// ABOUTME: Keeps all keys in one document and rewrites it atomically on change

package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"newsdesk-api/core/interfaces"
)

// Store implements interfaces.PreferenceStore on a single JSON file
type Store struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
}

// NewStore opens path, loading existing values. A missing file starts empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("prefs path cannot be empty")
	}

	s := &Store{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read prefs file: %w", err)
	}

	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parse prefs file %s: %w", path, err)
	}
	return s, nil
}

// GetString returns the stored value or interfaces.ErrPreferenceNotFound
func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", interfaces.ErrPreferenceNotFound
	}
	return v, nil
}

// PutString stores value and flushes the file
func (s *Store) PutString(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and flushes the file
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

// flush writes to a temp file in the same directory and renames it over
// the target. Caller holds s.mu.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.json")
	if err != nil {
		return fmt.Errorf("create temp prefs file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace prefs file: %w", err)
	}
	return nil
}
