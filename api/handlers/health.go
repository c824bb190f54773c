// ABOUTME: Health check handler for the Huma API
// ABOUTME: Reports liveness, configured backends and feature flags

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"newsdesk-api/api/dto/responses"
	"newsdesk-api/pkg/featureflags"
)

// RefreshStatus reports refresh progress for the health endpoint
type RefreshStatus interface {
	IsRefreshing() bool
}

// LastRefreshStore reads the time of the last completed refresh
type LastRefreshStore interface {
	LastRefresh(ctx context.Context) (time.Time, error)
}

// HealthHandler serves GET /health
type HealthHandler struct {
	CacheBackend string
	PrefsBackend string
	Refresh      RefreshStatus
	LastRefresh  LastRefreshStore
	Flags        featureflags.Manager
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput wraps the health report
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /health. A failing preferences read does not fail the check.
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	body := responses.HealthResponse{
		Status: "ok",
		Cache:  h.CacheBackend,
		Prefs:  h.PrefsBackend,
	}

	if h.Refresh != nil {
		body.Refreshing = h.Refresh.IsRefreshing()
	}
	if h.LastRefresh != nil {
		if t, err := h.LastRefresh.LastRefresh(ctx); err == nil && !t.IsZero() {
			body.LastRefresh = &t
		}
	}
	if h.Flags != nil {
		body.Features = make(map[string]bool)
		for flag, enabled := range h.Flags.GetAllFlags() {
			body.Features[string(flag)] = enabled
		}
	}

	return &HealthOutput{Body: body}, nil
}
