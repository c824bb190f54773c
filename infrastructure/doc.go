// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-process cache backed by patrickmn/go-cache
// - cache/redis: Redis cache using go-redis
// - cache/sqlite: SQLite cache with background expiry cleanup
// - prefs/file: JSON file preference store
// - prefs/sqlite: SQLite preference store
// - prefs/redis: preference store kept in a single Redis hash
// - http/standard: net/http client with retries and backoff
// - logger/logrus: structured logger backed by logrus
//
// # Cache
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), time.Hour)
//	value, err := cache.Get(ctx, "key")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # Preferences
//
//	store, err := file.NewStore("newsdesk_prefs.json")
//	err = store.PutString(ctx, "feeds", payload)
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30*time.Second, standard.WithUserAgent("Newsdesk/1.0"))
//	resp, err := client.Get(ctx, "https://example.com/feed.xml")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger, err := logrus.New(logrus.Options{Level: "debug", Format: "json"})
//	logger.Info("Refreshing feeds", map[string]interface{}{
//	    "feeds": 12,
//	})
package infrastructure
