package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name             string
		envVars          map[string]string
		expectedPort     string
		expectedInterval int
	}{
		{
			name:             "default port when PORT not set",
			envVars:          map[string]string{},
			expectedPort:     "8000",
			expectedInterval: 900,
		},
		{
			name:             "uses PORT env var when set",
			envVars:          map[string]string{"PORT": "3000"},
			expectedPort:     "3000",
			expectedInterval: 900,
		},
		{
			name:             "uses REFRESH_INTERVAL env var when set",
			envVars:          map[string]string{"REFRESH_INTERVAL": "120"},
			expectedPort:     "8000",
			expectedInterval: 120,
		},
		{
			name:             "falls back to default on unparsable interval",
			envVars:          map[string]string{"REFRESH_INTERVAL": "not-a-number"},
			expectedPort:     "8000",
			expectedInterval: 900,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v", err)
			}

			if cfg.Server.Port != tt.expectedPort {
				t.Errorf("Port = %v, want %v", cfg.Server.Port, tt.expectedPort)
			}

			if cfg.Server.RefreshInterval != tt.expectedInterval {
				t.Errorf("RefreshInterval = %v, want %v", cfg.Server.RefreshInterval, tt.expectedInterval)
			}
		})
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %v, want memory", cfg.Cache.Type)
	}
	if cfg.Prefs.Type != "file" {
		t.Errorf("Prefs.Type = %v, want file", cfg.Prefs.Type)
	}
	if cfg.News.MaxItemsPerFeed != 50 {
		t.Errorf("MaxItemsPerFeed = %v, want 50", cfg.News.MaxItemsPerFeed)
	}
	if cfg.Summary.Sentences != 3 {
		t.Errorf("Summary.Sentences = %v, want 3", cfg.Summary.Sentences)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv_ReadsDotEnv(t *testing.T) {
	os.Clearenv()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9100\nCACHE_TYPE=SQLite\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	os.Setenv("PORT", "9200")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Server.Port != "9200" {
		t.Errorf("Port = %v, want environment value 9200", cfg.Server.Port)
	}
	if cfg.Cache.Type != "sqlite" {
		t.Errorf("Cache.Type = %v, want sqlite from .env", cfg.Cache.Type)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8000", RefreshInterval: 900, RateLimit: 100},
		Cache:  CacheConfig{Type: "memory"},
		Prefs:  PrefsConfig{Type: "file", Path: "prefs.json"},
		News:   NewsConfig{FeedCacheTTL: 900, MaxItemsPerFeed: 50, FetchConcurrency: 8},
		Summary: SummaryConfig{
			Sentences: 3,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: true,
			errMsg:  "port cannot be empty",
		},
		{
			name:    "refresh interval too short",
			mutate:  func(c *Config) { c.Server.RefreshInterval = 10 },
			wantErr: true,
			errMsg:  "refresh interval must be at least 60 seconds",
		},
		{
			name:    "invalid cache type",
			mutate:  func(c *Config) { c.Cache.Type = "invalid" },
			wantErr: true,
			errMsg:  "cache type must be 'memory', 'redis' or 'sqlite'",
		},
		{
			name: "redis type with empty address",
			mutate: func(c *Config) {
				c.Cache.Type = "redis"
				c.Cache.Redis.Address = ""
			},
			wantErr: true,
			errMsg:  "redis address cannot be empty when using redis cache",
		},
		{
			name:    "invalid prefs type",
			mutate:  func(c *Config) { c.Prefs.Type = "cloud" },
			wantErr: true,
			errMsg:  "prefs type must be 'file', 'sqlite' or 'redis'",
		},
		{
			name:    "empty prefs path",
			mutate:  func(c *Config) { c.Prefs.Path = "" },
			wantErr: true,
			errMsg:  "prefs path cannot be empty",
		},
		{
			name:    "fetch concurrency out of range",
			mutate:  func(c *Config) { c.News.FetchConcurrency = 0 },
			wantErr: true,
			errMsg:  "fetch concurrency must be between 1 and 64",
		},
		{
			name:    "summary sentences out of range",
			mutate:  func(c *Config) { c.Summary.Sentences = 20 },
			wantErr: true,
			errMsg:  "summary sentences must be between 1 and 10",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
			errMsg:  "log level must be one of debug, info, warn, error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
