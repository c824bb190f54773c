// ABOUTME: Redis preference store sharing the cache's connection
// ABOUTME: Keeps every preference key in a single Redis hash

package redis

import (
	"context"
	"errors"

	"newsdesk-api/core/interfaces"

	"github.com/redis/go-redis/v9"
)

// DefaultHashKey is the hash holding all preference values
const DefaultHashKey = "newsdesk:prefs"

// Store implements interfaces.PreferenceStore with HGET/HSET/HDEL
type Store struct {
	client  redis.UniversalClient
	hashKey string
}

// NewStore wraps client. An empty hashKey uses DefaultHashKey.
func NewStore(client redis.UniversalClient, hashKey string) *Store {
	if hashKey == "" {
		hashKey = DefaultHashKey
	}
	return &Store{client: client, hashKey: hashKey}
}

// GetString returns the stored value or interfaces.ErrPreferenceNotFound
func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	v, err := s.client.HGet(ctx, s.hashKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", interfaces.ErrPreferenceNotFound
	}
	return v, err
}

// PutString stores value under key
func (s *Store) PutString(ctx context.Context, key, value string) error {
	return s.client.HSet(ctx, s.hashKey, key, value).Err()
}

// Remove deletes key
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.client.HDel(ctx, s.hashKey, key).Err()
}
