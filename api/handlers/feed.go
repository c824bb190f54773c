// ABOUTME: Feed handlers for the Huma API
// ABOUTME: Provides HTTP endpoints for managing the configured feeds and their categories

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsdesk-api/api/dto/mappers"
	"newsdesk-api/api/dto/requests"
	"newsdesk-api/api/dto/responses"
	"newsdesk-api/core/domain"
	"newsdesk-api/core/preferences"
)

// FeedService is the preferences functionality the feed endpoints need
type FeedService interface {
	ListFeeds(ctx context.Context) ([]domain.Feed, error)
	EnabledFeeds(ctx context.Context) ([]domain.Feed, error)
	GetFeed(ctx context.Context, id string) (*domain.Feed, error)
	AddFeed(ctx context.Context, input preferences.NewFeed) (*domain.Feed, error)
	UpdateFeed(ctx context.Context, id string, patch preferences.FeedPatch) (*domain.Feed, error)
	RemoveFeed(ctx context.Context, id string) error
	ResetFeeds(ctx context.Context) ([]domain.Feed, error)
	Categories(ctx context.Context) ([]string, error)
}

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feeds FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feeds FeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

// RegisterRoutes registers all feed-related routes
func (h *FeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listFeeds",
		Method:      http.MethodGet,
		Path:        "/feeds",
		Summary:     "List configured feeds",
		Tags:        []string{"Feeds"},
	}, h.ListFeeds)

	huma.Register(api, huma.Operation{
		OperationID:   "addFeed",
		Method:        http.MethodPost,
		Path:          "/feeds",
		Summary:       "Subscribe to a feed",
		Tags:          []string{"Feeds"},
		DefaultStatus: http.StatusCreated,
	}, h.AddFeed)

	huma.Register(api, huma.Operation{
		OperationID: "resetFeeds",
		Method:      http.MethodPost,
		Path:        "/feeds/reset",
		Summary:     "Restore the default feeds",
		Description: "Replaces the configured feeds with the default set. Bookmarks are kept.",
		Tags:        []string{"Feeds"},
	}, h.ResetFeeds)

	huma.Register(api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/feeds/{id}",
		Summary:     "Get a feed",
		Tags:        []string{"Feeds"},
	}, h.GetFeed)

	huma.Register(api, huma.Operation{
		OperationID: "updateFeed",
		Method:      http.MethodPatch,
		Path:        "/feeds/{id}",
		Summary:     "Update a feed",
		Tags:        []string{"Feeds"},
	}, h.UpdateFeed)

	huma.Register(api, huma.Operation{
		OperationID:   "removeFeed",
		Method:        http.MethodDelete,
		Path:          "/feeds/{id}",
		Summary:       "Unsubscribe from a feed",
		Tags:          []string{"Feeds"},
		DefaultStatus: http.StatusNoContent,
	}, h.RemoveFeed)

	huma.Register(api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List feed categories",
		Tags:        []string{"Feeds"},
	}, h.ListCategories)
}

// ListFeedsInput defines the query for ListFeeds
type ListFeedsInput struct {
	Enabled bool `query:"enabled" doc:"Only return enabled feeds"`
}

// FeedListOutput wraps a feed list
type FeedListOutput struct {
	Body responses.FeedListResponse
}

// FeedOutput wraps one feed
type FeedOutput struct {
	Body responses.FeedResponse
}

// FeedIDInput addresses one feed
type FeedIDInput struct {
	ID string `path:"id" doc:"Feed identifier"`
}

// AddFeedInput defines the body for AddFeed
type AddFeedInput struct {
	Body requests.CreateFeedRequest
}

// UpdateFeedInput defines the path and body for UpdateFeed
type UpdateFeedInput struct {
	ID   string `path:"id" doc:"Feed identifier"`
	Body requests.UpdateFeedRequest
}

// CategoriesOutput wraps the category list
type CategoriesOutput struct {
	Body responses.CategoriesResponse
}

// ListFeeds handles GET /feeds
func (h *FeedHandler) ListFeeds(ctx context.Context, input *ListFeedsInput) (*FeedListOutput, error) {
	var feeds []domain.Feed
	var err error
	if input.Enabled {
		feeds, err = h.feeds.EnabledFeeds(ctx)
	} else {
		feeds, err = h.feeds.ListFeeds(ctx)
	}
	if err != nil {
		return nil, toHumaError(err)
	}

	return &FeedListOutput{Body: mappers.FeedsToResponse(feeds)}, nil
}

// AddFeed handles POST /feeds
func (h *FeedHandler) AddFeed(ctx context.Context, input *AddFeedInput) (*FeedOutput, error) {
	feed, err := h.feeds.AddFeed(ctx, input.Body.ToNewFeed())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FeedOutput{Body: mappers.FeedToResponse(*feed)}, nil
}

// GetFeed handles GET /feeds/{id}
func (h *FeedHandler) GetFeed(ctx context.Context, input *FeedIDInput) (*FeedOutput, error) {
	feed, err := h.feeds.GetFeed(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FeedOutput{Body: mappers.FeedToResponse(*feed)}, nil
}

// UpdateFeed handles PATCH /feeds/{id}
func (h *FeedHandler) UpdateFeed(ctx context.Context, input *UpdateFeedInput) (*FeedOutput, error) {
	if input.Body.IsEmpty() {
		return nil, huma.Error400BadRequest("No fields to update")
	}

	feed, err := h.feeds.UpdateFeed(ctx, input.ID, input.Body.ToPatch())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FeedOutput{Body: mappers.FeedToResponse(*feed)}, nil
}

// RemoveFeed handles DELETE /feeds/{id}
func (h *FeedHandler) RemoveFeed(ctx context.Context, input *FeedIDInput) (*struct{}, error) {
	if err := h.feeds.RemoveFeed(ctx, input.ID); err != nil {
		return nil, toHumaError(err)
	}
	return nil, nil
}

// ResetFeeds handles POST /feeds/reset
func (h *FeedHandler) ResetFeeds(ctx context.Context, _ *struct{}) (*FeedListOutput, error) {
	feeds, err := h.feeds.ResetFeeds(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FeedListOutput{Body: mappers.FeedsToResponse(feeds)}, nil
}

// ListCategories handles GET /categories
func (h *FeedHandler) ListCategories(ctx context.Context, _ *struct{}) (*CategoriesOutput, error) {
	categories, err := h.feeds.Categories(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	if categories == nil {
		categories = []string{}
	}
	return &CategoriesOutput{Body: responses.CategoriesResponse{Categories: categories}}, nil
}
