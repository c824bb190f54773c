// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the interface for cache operations.
// Implementations can be Redis, SQLite, in-memory, or any other caching solution.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Store a feed's items for fifteen minutes
//	err := cache.Set(ctx, "news:feed:bbc", data, 15*time.Minute)
//
//	// Retrieve a value
//	data, err := cache.Get(ctx, "news:feed:bbc")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// refetch
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
