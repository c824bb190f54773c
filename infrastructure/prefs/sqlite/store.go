// ABOUTME: SQLite preference store for deployments that already keep a database file
// ABOUTME: Stores each preference key as one row in the prefs table

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsdesk-api/core/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

// Store implements interfaces.PreferenceStore using SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("prefs path cannot be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS prefs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// GetString returns the stored value or interfaces.ErrPreferenceNotFound
func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", interfaces.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference: %w", err)
	}
	return value, nil
}

// PutString upserts the value for key
func (s *Store) PutString(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to put preference: %w", err)
	}
	return nil
}

// Remove deletes key
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM prefs WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove preference: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
