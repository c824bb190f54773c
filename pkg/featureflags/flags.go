// ABOUTME: Feature flag management for optional reader capabilities
// ABOUTME: Provides environment-driven toggles with per-flag defaults

package featureflags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FeatureFlag represents a single feature flag
type FeatureFlag string

// Defined feature flags
const (
	// ScheduledRefresh runs the background feed refresh job
	ScheduledRefresh FeatureFlag = "scheduled_refresh"

	// ThumbnailEnrichment looks up og:image for items that have no image
	ThumbnailEnrichment FeatureFlag = "thumbnail_enrichment"

	// RemoteSummary puts the LLM summarizer ahead of the extractive ones
	RemoteSummary FeatureFlag = "remote_summary"

	// RateLimitEnabled enables per-client rate limiting
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"
)

// Defaults holds the state of each flag when its variable is not set
var Defaults = map[FeatureFlag]bool{
	ScheduledRefresh:    true,
	ThumbnailEnrichment: false,
	RemoteSummary:       true,
	RateLimitEnabled:    true,
}

// Manager defines the interface for feature flag management
type Manager interface {
	// IsEnabled checks if a feature flag is enabled
	IsEnabled(ctx context.Context, flag FeatureFlag) bool

	// SetEnabled sets a feature flag's state (for testing)
	SetEnabled(flag FeatureFlag, enabled bool)

	// GetAllFlags returns the state of all flags
	GetAllFlags() map[FeatureFlag]bool
}

// EnvManager implements Manager using environment variables
type EnvManager struct {
	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
	defaults  map[FeatureFlag]bool
	prefix    string
}

// NewEnvManager creates a new environment-based feature flag manager.
// defaults may be nil, in which case unset flags are disabled.
func NewEnvManager(prefix string, defaults map[FeatureFlag]bool) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	d := make(map[FeatureFlag]bool, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &EnvManager{
		overrides: make(map[FeatureFlag]bool),
		defaults:  d,
		prefix:    prefix,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if enabled, ok := m.overrides[flag]; ok {
		return enabled
	}

	envKey := m.prefix + strings.ToUpper(string(flag))
	value, set := os.LookupEnv(envKey)
	if !set || value == "" {
		return m.defaults[flag]
	}

	switch strings.ToLower(value) {
	case "true", "1", "enabled", "on":
		return true
	}
	return false
}

// SetEnabled sets a feature flag's state (mainly for testing)
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags returns the state of all defined flags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	ctx := context.Background()
	flags := make(map[FeatureFlag]bool, len(Defaults))
	for flag := range Defaults {
		flags[flag] = m.IsEnabled(ctx, flag)
	}
	return flags
}

// StaticManager implements Manager with static configuration
type StaticManager struct {
	flags map[FeatureFlag]bool
	mu    sync.RWMutex
}

// NewStaticManager creates a manager with predefined flag states
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	if flags == nil {
		flags = make(map[FeatureFlag]bool)
	}
	return &StaticManager{
		flags: flags,
	}
}

// IsEnabled checks if a feature flag is enabled
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

// SetEnabled sets a feature flag's state
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// GetAllFlags returns all flag states
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[FeatureFlag]bool)
	for k, v := range m.flags {
		result[k] = v
	}
	return result
}
