// ABOUTME: Storage interfaces for persisting reader preferences
// ABOUTME: Defines a shared-preferences style string key/value contract

package interfaces

import (
	"context"
	"errors"
)

// ErrPreferenceNotFound is returned when a preference key has never been written
var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceStore is a durable string key/value store, the server-side
// counterpart of a mobile shared-preferences file.
type PreferenceStore interface {
	// GetString returns the stored value or ErrPreferenceNotFound
	GetString(ctx context.Context, key string) (string, error)

	// PutString stores value under key, replacing any previous value
	PutString(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
