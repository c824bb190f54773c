// ABOUTME: Mappers between domain models and API response DTOs
// ABOUTME: Keeps handler code free of field-by-field copying

package mappers

import (
	"newsdesk-api/api/dto/responses"
	"newsdesk-api/core/domain"
	"newsdesk-api/core/news"
)

// FeedToResponse maps a feed
func FeedToResponse(f domain.Feed) responses.FeedResponse {
	return responses.FeedResponse{
		ID:       f.ID,
		Name:     f.Name,
		URL:      f.URL,
		Category: f.Category,
		Enabled:  f.Enabled,
		AddedAt:  f.AddedAt,
	}
}

// FeedsToResponse maps a feed list
func FeedsToResponse(feeds []domain.Feed) responses.FeedListResponse {
	out := make([]responses.FeedResponse, len(feeds))
	for i, f := range feeds {
		out[i] = FeedToResponse(f)
	}
	return responses.FeedListResponse{Feeds: out, Total: len(out)}
}

// NewsItemToResponse maps an item
func NewsItemToResponse(n domain.NewsItem) responses.NewsItemResponse {
	return responses.NewsItemResponse{
		ID:          n.ID,
		FeedID:      n.FeedID,
		FeedName:    n.FeedName,
		Category:    n.Category,
		Title:       n.Title,
		Description: n.Description,
		Content:     n.Content,
		Link:        n.Link,
		ImageURL:    n.ImageURL,
		Author:      n.Author,
		Published:   n.Published,
		Bookmarked:  n.Bookmarked,
		Summary:     n.Summary,
	}
}

// NewsItemsToResponse maps items, never returning nil
func NewsItemsToResponse(items []domain.NewsItem) []responses.NewsItemResponse {
	out := make([]responses.NewsItemResponse, len(items))
	for i, n := range items {
		out[i] = NewsItemToResponse(n)
	}
	return out
}

// PageToResponse maps a query page
func PageToResponse(p *news.Page, refreshing bool) responses.NewsPageResponse {
	return responses.NewsPageResponse{
		Items:      NewsItemsToResponse(p.Items),
		Total:      p.Total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages,
		Refreshing: refreshing,
	}
}

// StateToRefreshResponse maps the state returned by a refresh
func StateToRefreshResponse(s *news.State) responses.RefreshResponse {
	return responses.RefreshResponse{
		Total:       len(s.Items),
		RefreshedAt: s.RefreshedAt,
		FeedErrors:  s.FeedErrors,
	}
}

// SummaryToResponse maps a summary
func SummaryToResponse(s *domain.Summary) responses.SummaryResponse {
	return responses.SummaryResponse{
		ItemID:    s.ItemID,
		Text:      s.Text,
		Sentences: s.Sentences,
		Method:    s.Method,
		CreatedAt: s.CreatedAt,
	}
}
