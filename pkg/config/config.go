// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, preferences, news and summaries

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Prefs contains feed-preferences storage configuration
	Prefs PrefsConfig

	// News contains feed refresh configuration
	News NewsConfig

	// Summary contains summarization configuration
	Summary SummaryConfig

	// Log contains logger configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RefreshInterval is the interval in seconds between scheduled refreshes
	RefreshInterval int

	// RateLimit is the number of requests allowed per client per minute
	RateLimit int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file used by the sqlite cache
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// PrefsConfig holds preferences storage configuration
type PrefsConfig struct {
	// Type specifies the backend (file/sqlite/redis)
	Type string

	// Path is the JSON file or SQLite database used for preferences
	Path string
}

// NewsConfig holds feed refresh configuration
type NewsConfig struct {
	// FeedCacheTTL is how long fetched feed items stay fresh, in seconds
	FeedCacheTTL int

	// MaxItemsPerFeed caps the number of items kept from one feed
	MaxItemsPerFeed int

	// FetchConcurrency limits parallel feed fetches
	FetchConcurrency int
}

// SummaryConfig holds summarization configuration
type SummaryConfig struct {
	// Sentences is the number of sentences in extractive summaries
	Sentences int

	// LLMAPIKey enables the remote summarizer when set
	LLMAPIKey string

	// LLMModel is the chat model used by the remote summarizer
	LLMModel string

	// LLMBaseURL overrides the OpenAI-compatible endpoint
	LLMBaseURL string
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is text or json
	Format string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is read first when present;
// variables already set in the environment take precedence.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8000"),
			RefreshInterval: getEnvAsIntOrDefault("REFRESH_INTERVAL", 900),
			RateLimit:       getEnvAsIntOrDefault("RATE_LIMIT", 120),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", "memory")),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLitePath: getEnvOrDefault("SQLITE_CACHE_PATH", "cache.db"),
		},
		Prefs: PrefsConfig{
			Type: strings.ToLower(getEnvOrDefault("PREFS_TYPE", "file")),
			Path: getEnvOrDefault("PREFS_PATH", "newsdesk_prefs.json"),
		},
		News: NewsConfig{
			FeedCacheTTL:     getEnvAsIntOrDefault("FEED_CACHE_TTL", 900),
			MaxItemsPerFeed:  getEnvAsIntOrDefault("MAX_ITEMS_PER_FEED", 50),
			FetchConcurrency: getEnvAsIntOrDefault("FETCH_CONCURRENCY", 8),
		},
		Summary: SummaryConfig{
			Sentences:  getEnvAsIntOrDefault("SUMMARY_SENTENCES", 3),
			LLMAPIKey:  getEnvOrDefault("SUMMARY_LLM_API_KEY", ""),
			LLMModel:   getEnvOrDefault("SUMMARY_LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL: getEnvOrDefault("SUMMARY_LLM_BASE_URL", ""),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RefreshInterval < 60 {
		return errors.New("refresh interval must be at least 60 seconds")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case "memory", "sqlite":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	switch c.Prefs.Type {
	case "file", "sqlite":
		if c.Prefs.Path == "" {
			return errors.New("prefs path cannot be empty")
		}
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis prefs")
		}
	default:
		return errors.New("prefs type must be 'file', 'sqlite' or 'redis'")
	}

	if c.News.FeedCacheTTL < 1 {
		return errors.New("feed cache TTL must be at least 1 second")
	}

	if c.News.MaxItemsPerFeed < 1 {
		return errors.New("max items per feed must be at least 1")
	}

	if c.News.FetchConcurrency < 1 || c.News.FetchConcurrency > 64 {
		return errors.New("fetch concurrency must be between 1 and 64")
	}

	if c.Summary.Sentences < 1 || c.Summary.Sentences > 10 {
		return errors.New("summary sentences must be between 1 and 10")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log level must be one of debug, info, warn, error")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}
