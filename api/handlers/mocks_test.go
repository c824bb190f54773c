package handlers

import (
	"context"
	"sync"
	"time"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/errors"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/news"
)

// memStore is an in-memory PreferenceStore
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) GetString(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", interfaces.ErrPreferenceNotFound
	}
	return v, nil
}

func (m *memStore) PutString(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}

// mockNewsService serves a fixed item list
type mockNewsService struct {
	mu          sync.Mutex
	items       []domain.NewsItem
	refreshErr  error
	lastForce   bool
	lastFilter  news.Filter
	summaries   map[string]string
	refreshing  bool
	refreshedAt time.Time
}

func (m *mockNewsService) Query(ctx context.Context, filter news.Filter) (*news.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	if filter.PerPage < 0 || filter.PerPage > news.MaxPerPage || filter.Page < 0 {
		return nil, &errors.ValidationError{Field: "per_page", Message: "out of range"}
	}
	matched := news.FilterItems(m.items, filter)
	return &news.Page{Items: matched, Total: len(matched), Page: 1, PerPage: news.DefaultPerPage, TotalPages: 1}, nil
}

func (m *mockNewsService) Refresh(ctx context.Context, force bool) (*news.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastForce = force
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return &news.State{
		Items:       m.items,
		RefreshedAt: m.refreshedAt,
		FeedErrors:  map[string]string{"broken": "unexpected status 500"},
	}, nil
}

func (m *mockNewsService) GetItem(ctx context.Context, id string) (*domain.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, &errors.NotFoundError{Resource: "news item", ID: id}
}

func (m *mockNewsService) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Bookmarked = !m.items[i].Bookmarked
			return m.items[i].Bookmarked, nil
		}
	}
	return false, &errors.NotFoundError{Resource: "news item", ID: id}
}

func (m *mockNewsService) AttachSummary(ctx context.Context, id, summary string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.summaries == nil {
		m.summaries = make(map[string]string)
	}
	m.summaries[id] = summary
}

func (m *mockNewsService) IsRefreshing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshing
}

type mockBookmarks struct {
	items []domain.NewsItem
	err   error
}

func (m *mockBookmarks) Bookmarks(ctx context.Context) ([]domain.NewsItem, error) {
	return m.items, m.err
}

type mockSummaries struct {
	err error
}

func (m *mockSummaries) Summarize(ctx context.Context, item domain.NewsItem) (*domain.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Summary{
		ItemID:    item.ID,
		Text:      "Summary of " + item.Title + ".",
		Sentences: 1,
		Method:    "lead",
		CreatedAt: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}, nil
}

type mockExtractor struct {
	got []string
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, urls []string) []domain.Article {
	m.got = urls
	out := make([]domain.Article, len(urls))
	for i, u := range urls {
		out[i] = domain.Article{URL: u, Title: "Title " + u, Status: "ok"}
	}
	return out
}
