// ABOUTME: News handlers for the Huma API
// ABOUTME: Exposes the reader state: querying, refreshing, bookmarks and summaries

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsdesk-api/api/dto/mappers"
	"newsdesk-api/api/dto/responses"
	"newsdesk-api/core/domain"
	"newsdesk-api/core/news"
)

// NewsService is the news functionality the endpoints need
type NewsService interface {
	Query(ctx context.Context, filter news.Filter) (*news.Page, error)
	Refresh(ctx context.Context, force bool) (*news.State, error)
	GetItem(ctx context.Context, id string) (*domain.NewsItem, error)
	ToggleBookmark(ctx context.Context, id string) (bool, error)
	AttachSummary(ctx context.Context, id, summary string)
	IsRefreshing() bool
}

// BookmarkStore lists saved bookmarks
type BookmarkStore interface {
	Bookmarks(ctx context.Context) ([]domain.NewsItem, error)
}

// SummaryService summarizes a single item
type SummaryService interface {
	Summarize(ctx context.Context, item domain.NewsItem) (*domain.Summary, error)
}

// NewsHandler handles news-related HTTP requests
type NewsHandler struct {
	news      NewsService
	bookmarks BookmarkStore
	summaries SummaryService
}

// NewNewsHandler creates a new news handler. summaries may be nil, which
// leaves the summary route unregistered.
func NewNewsHandler(newsService NewsService, bookmarks BookmarkStore, summaries SummaryService) *NewsHandler {
	return &NewsHandler{
		news:      newsService,
		bookmarks: bookmarks,
		summaries: summaries,
	}
}

// RegisterRoutes registers all news-related routes
func (h *NewsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "queryNews",
		Method:      http.MethodGet,
		Path:        "/news",
		Summary:     "Query news items",
		Description: "Filters the merged item list by category, feed, bookmark state or text, newest first",
		Tags:        []string{"News"},
	}, h.QueryNews)

	huma.Register(api, huma.Operation{
		OperationID: "refreshNews",
		Method:      http.MethodPost,
		Path:        "/news/refresh",
		Summary:     "Refresh all enabled feeds",
		Description: "Concurrent callers share one in-flight refresh. With force=true cached feeds are refetched.",
		Tags:        []string{"News"},
	}, h.RefreshNews)

	huma.Register(api, huma.Operation{
		OperationID: "getNewsItem",
		Method:      http.MethodGet,
		Path:        "/news/{id}",
		Summary:     "Get a news item",
		Tags:        []string{"News"},
	}, h.GetItem)

	huma.Register(api, huma.Operation{
		OperationID: "toggleBookmark",
		Method:      http.MethodPost,
		Path:        "/news/{id}/bookmark",
		Summary:     "Toggle the bookmark on an item",
		Tags:        []string{"Bookmarks"},
	}, h.ToggleBookmark)

	huma.Register(api, huma.Operation{
		OperationID: "listBookmarks",
		Method:      http.MethodGet,
		Path:        "/bookmarks",
		Summary:     "List bookmarked items",
		Tags:        []string{"Bookmarks"},
	}, h.ListBookmarks)

	if h.summaries != nil {
		huma.Register(api, huma.Operation{
			OperationID: "summarizeNewsItem",
			Method:      http.MethodGet,
			Path:        "/news/{id}/summary",
			Summary:     "Summarize a news item",
			Tags:        []string{"Summaries"},
		}, h.Summarize)
	}
}

// QueryNewsInput defines the query parameters for QueryNews
type QueryNewsInput struct {
	Category   string `query:"category" doc:"Only items in this category"`
	Feed       string `query:"feed" doc:"Only items from this feed ID"`
	Bookmarked bool   `query:"bookmarked" doc:"Only bookmarked items"`
	Q          string `query:"q" maxLength:"200" doc:"Case-insensitive search over title and description"`
	Page       int    `query:"page" maximum:"10000" doc:"Page number (1-based, default 1)"`
	PerPage    int    `query:"per_page" doc:"Items per page (1-100, default 20)"`
}

// QueryNewsOutput wraps a page of items
type QueryNewsOutput struct {
	Body responses.NewsPageResponse
}

// RefreshInput defines the query for RefreshNews
type RefreshInput struct {
	Force bool `query:"force" doc:"Bypass cached feeds"`
}

// RefreshOutput wraps the refresh outcome
type RefreshOutput struct {
	Body responses.RefreshResponse
}

// ItemIDInput addresses one news item
type ItemIDInput struct {
	ID string `path:"id" doc:"News item identifier"`
}

// NewsItemOutput wraps one item
type NewsItemOutput struct {
	Body responses.NewsItemResponse
}

// BookmarkOutput wraps the new bookmark state
type BookmarkOutput struct {
	Body responses.BookmarkResponse
}

// BookmarksOutput wraps the bookmark list
type BookmarksOutput struct {
	Body responses.BookmarksResponse
}

// SummaryOutput wraps a summary
type SummaryOutput struct {
	Body responses.SummaryResponse
}

// QueryNews handles GET /news
func (h *NewsHandler) QueryNews(ctx context.Context, input *QueryNewsInput) (*QueryNewsOutput, error) {
	page, err := h.news.Query(ctx, news.Filter{
		Category:       input.Category,
		FeedID:         input.Feed,
		BookmarkedOnly: input.Bookmarked,
		Search:         input.Q,
		Page:           input.Page,
		PerPage:        input.PerPage,
	})
	if err != nil {
		return nil, toHumaError(err)
	}

	return &QueryNewsOutput{Body: mappers.PageToResponse(page, h.news.IsRefreshing())}, nil
}

// RefreshNews handles POST /news/refresh
func (h *NewsHandler) RefreshNews(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
	state, err := h.news.Refresh(ctx, input.Force)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &RefreshOutput{Body: mappers.StateToRefreshResponse(state)}, nil
}

// GetItem handles GET /news/{id}
func (h *NewsHandler) GetItem(ctx context.Context, input *ItemIDInput) (*NewsItemOutput, error) {
	item, err := h.news.GetItem(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &NewsItemOutput{Body: mappers.NewsItemToResponse(*item)}, nil
}

// ToggleBookmark handles POST /news/{id}/bookmark
func (h *NewsHandler) ToggleBookmark(ctx context.Context, input *ItemIDInput) (*BookmarkOutput, error) {
	bookmarked, err := h.news.ToggleBookmark(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &BookmarkOutput{Body: responses.BookmarkResponse{ID: input.ID, Bookmarked: bookmarked}}, nil
}

// ListBookmarks handles GET /bookmarks
func (h *NewsHandler) ListBookmarks(ctx context.Context, _ *struct{}) (*BookmarksOutput, error) {
	items, err := h.bookmarks.Bookmarks(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &BookmarksOutput{Body: responses.BookmarksResponse{
		Items: mappers.NewsItemsToResponse(items),
		Total: len(items),
	}}, nil
}

// Summarize handles GET /news/{id}/summary
func (h *NewsHandler) Summarize(ctx context.Context, input *ItemIDInput) (*SummaryOutput, error) {
	item, err := h.news.GetItem(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	summary, err := h.summaries.Summarize(ctx, *item)
	if err != nil {
		return nil, toHumaError(err)
	}
	h.news.AttachSummary(ctx, item.ID, summary.Text)

	return &SummaryOutput{Body: mappers.SummaryToResponse(summary)}, nil
}
