// ABOUTME: Response DTOs for feed, category and health endpoints
// ABOUTME: Shapes the JSON returned to API clients

package responses

import "time"

// FeedResponse is one configured feed
type FeedResponse struct {
	ID       string    `json:"id" doc:"Feed identifier"`
	Name     string    `json:"name" doc:"Display name"`
	URL      string    `json:"url" doc:"Feed URL"`
	Category string    `json:"category" doc:"Category"`
	Enabled  bool      `json:"enabled" doc:"Whether the feed takes part in refreshes"`
	AddedAt  time.Time `json:"added_at" doc:"When the feed was added"`
}

// FeedListResponse lists feeds
type FeedListResponse struct {
	Feeds []FeedResponse `json:"feeds"`
	Total int            `json:"total"`
}

// CategoriesResponse lists distinct feed categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// HealthResponse reports liveness and the configured backends
type HealthResponse struct {
	Status      string          `json:"status" example:"ok"`
	Cache       string          `json:"cache" doc:"Cache backend name"`
	Prefs       string          `json:"prefs" doc:"Preferences backend name"`
	Refreshing  bool            `json:"refreshing"`
	LastRefresh *time.Time      `json:"last_refresh,omitempty"`
	Features    map[string]bool `json:"features,omitempty"`
}
