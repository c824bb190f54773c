// ABOUTME: Builds the cache and preference-store backends selected by configuration
// ABOUTME: Keeps track of what must be closed on shutdown

package main

import (
	"fmt"
	"io"

	"newsdesk-api/core/interfaces"
	"newsdesk-api/infrastructure/cache/memory"
	rediscache "newsdesk-api/infrastructure/cache/redis"
	sqlitecache "newsdesk-api/infrastructure/cache/sqlite"
	fileprefs "newsdesk-api/infrastructure/prefs/file"
	redisprefs "newsdesk-api/infrastructure/prefs/redis"
	sqliteprefs "newsdesk-api/infrastructure/prefs/sqlite"
	"newsdesk-api/pkg/config"

	"github.com/redis/go-redis/v9"
)

// backends holds the storage selected at startup
type backends struct {
	cache     interfaces.Cache
	cacheName string
	prefs     interfaces.PreferenceStore
	prefsName string

	redisClient redis.UniversalClient
	closers     []io.Closer
}

// buildCache picks the cache backend. A redis or sqlite backend that cannot
// be opened falls back to memory so the reader keeps working.
func buildCache(cfg *config.Config, logger interfaces.Logger, b *backends) {
	switch cfg.Cache.Type {
	case "redis":
		c, err := rediscache.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		b.cache, b.cacheName = c, "redis"
		b.redisClient = c.Client()
		b.closers = append(b.closers, c)
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
	case "sqlite":
		c, err := sqlitecache.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
				"path":  cfg.Cache.SQLitePath,
			})
			break
		}
		b.cache, b.cacheName = c, "sqlite"
		b.closers = append(b.closers, c)
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLitePath,
		})
	}

	if b.cache == nil {
		b.cache, b.cacheName = memory.NewMemoryCache(), "memory"
		logger.Info("Using memory cache", nil)
	}
}

// buildPrefs opens the preference store. Unlike the cache there is no
// fallback: losing feeds and bookmarks silently would be worse than failing.
func buildPrefs(cfg *config.Config, logger interfaces.Logger, b *backends) error {
	switch cfg.Prefs.Type {
	case "sqlite":
		s, err := sqliteprefs.NewStore(cfg.Prefs.Path)
		if err != nil {
			return fmt.Errorf("open sqlite prefs: %w", err)
		}
		b.prefs, b.prefsName = s, "sqlite"
		b.closers = append(b.closers, s)
	case "redis":
		client := b.redisClient
		if client == nil {
			c := redis.NewClient(&redis.Options{
				Addr:     cfg.Cache.Redis.Address,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			})
			b.closers = append(b.closers, c)
			client = c
		}
		b.prefs, b.prefsName = redisprefs.NewStore(client, ""), "redis"
	default:
		s, err := fileprefs.NewStore(cfg.Prefs.Path)
		if err != nil {
			return fmt.Errorf("open prefs file: %w", err)
		}
		b.prefs, b.prefsName = s, "file"
	}

	logger.Info("Using preference store", map[string]interface{}{
		"type": b.prefsName,
		"path": cfg.Prefs.Path,
	})
	return nil
}

// close releases backends in reverse order of creation
func (b *backends) close(logger interfaces.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil {
			logger.Warn("Failed to close backend", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
