package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/news"
)

func TestFeedsToResponse(t *testing.T) {
	added := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got := FeedsToResponse([]domain.Feed{
		{ID: "a", Name: "A", URL: "https://a.example.com/rss", Category: "World", Enabled: true, AddedAt: added},
		{ID: "b", Name: "B", URL: "https://b.example.com/rss", Category: "Tech"},
	})

	assert.Equal(t, 2, got.Total)
	assert.Equal(t, "a", got.Feeds[0].ID)
	assert.True(t, got.Feeds[0].Enabled)
	assert.Equal(t, added, got.Feeds[0].AddedAt)
	assert.False(t, got.Feeds[1].Enabled)
}

func TestFeedsToResponse_EmptyIsNotNil(t *testing.T) {
	got := FeedsToResponse(nil)
	assert.NotNil(t, got.Feeds)
	assert.Equal(t, 0, got.Total)
}

func TestPageToResponse(t *testing.T) {
	page := &news.Page{
		Items:      []domain.NewsItem{{ID: "x", Title: "X", Bookmarked: true, Summary: "Short."}},
		Total:      41,
		Page:       3,
		PerPage:    20,
		TotalPages: 3,
	}

	got := PageToResponse(page, true)
	assert.Equal(t, 41, got.Total)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 3, got.TotalPages)
	assert.True(t, got.Refreshing)
	assert.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Bookmarked)
	assert.Equal(t, "Short.", got.Items[0].Summary)
}

func TestStateToRefreshResponse(t *testing.T) {
	at := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	got := StateToRefreshResponse(&news.State{
		Items:       make([]domain.NewsItem, 4),
		RefreshedAt: at,
		FeedErrors:  map[string]string{"b": "timeout"},
	})

	assert.Equal(t, 4, got.Total)
	assert.Equal(t, at, got.RefreshedAt)
	assert.Equal(t, "timeout", got.FeedErrors["b"])
}
