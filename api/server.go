// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"newsdesk-api/api/middleware"
	"newsdesk-api/core/interfaces"
)

const (
	apiTitle   = "Newsdesk API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// RateLimiter is applied per client IP when set
	RateLimiter *middleware.RateLimiter
}

// Routes is implemented by every handler group
type Routes interface {
	RegisterRoutes(api huma.API)
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS runs first so preflight requests are neither logged nor limited
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimiter))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Feeds, merged news items, bookmarks, summaries and article extraction for a news reader"

	api := humachi.New(router, config)

	return api, router
}

// Register adds every handler group's routes to api
func Register(api huma.API, routes ...Routes) {
	for _, r := range routes {
		if r != nil {
			r.RegisterRoutes(api)
		}
	}
}
