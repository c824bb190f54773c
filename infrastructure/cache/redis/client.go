// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Provides distributed caching with TTL support and connection pooling

package redis

import (
	"context"
	"errors"
	"time"

	"newsdesk-api/core/interfaces"
	"newsdesk-api/pkg/config"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a new Redis cache instance and verifies the connection
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client, ""), nil
}

// NewRedisCacheFromClient wraps an existing client. Every key is stored
// under prefix, which lets the cache share a database with other data.
func NewRedisCacheFromClient(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, interfaces.ErrCacheMiss
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Redis SET with 0 TTL means no expiration
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key from Redis. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Client exposes the underlying connection so other stores can share it
func (c *RedisCache) Client() redis.UniversalClient {
	return c.client
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
