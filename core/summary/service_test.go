package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk-api/core/domain"
	apperrors "newsdesk-api/core/errors"
	"newsdesk-api/core/interfaces"
)

func newTestService(cache *memoryCache, summarizers ...Summarizer) *Service {
	logger := &mockLogger{}
	deps := interfaces.Dependencies{Cache: cache, Logger: logger}
	svc := NewService(deps, NewChain(logger, summarizers...), 2)
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_SummarizeCachesResult(t *testing.T) {
	cache := newMemoryCache()
	stub := &stubSummarizer{name: "lead", text: "First. Second."}
	svc := newTestService(cache, stub)

	item := domain.NewsItem{ID: "abc", Title: "T", Content: "First. Second. Third."}

	got, err := svc.Summarize(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ItemID)
	assert.Equal(t, "First. Second.", got.Text)
	assert.Equal(t, 2, got.Sentences)
	assert.Equal(t, "lead", got.Method)
	assert.Equal(t, 2, stub.last.MaxSentences)
	assert.Equal(t, 24*time.Hour, cache.ttls["summary:abc"])

	again, err := svc.Summarize(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, got.Text, again.Text)
	assert.Equal(t, 1, stub.callCount(), "second call should be served from cache")
}

func TestService_FallsBackToDescription(t *testing.T) {
	stub := &stubSummarizer{name: "lead", text: "ok"}
	svc := newTestService(newMemoryCache(), stub)

	_, err := svc.Summarize(context.Background(), domain.NewsItem{ID: "x", Title: "T", Description: "Teaser text."})
	require.NoError(t, err)
	assert.Equal(t, "Teaser text.", stub.last.Content)
	assert.Equal(t, "T", stub.last.Title)
}

func TestService_FailuresNotCached(t *testing.T) {
	cache := newMemoryCache()
	stub := &stubSummarizer{name: "lead", err: errors.New("nope")}
	svc := newTestService(cache, stub)

	_, err := svc.Summarize(context.Background(), domain.NewsItem{ID: "x", Title: "T"})
	require.Error(t, err)
	assert.False(t, cache.has("summary:x"))

	_, err = svc.Summarize(context.Background(), domain.NewsItem{ID: "x", Title: "T"})
	require.Error(t, err)
	assert.Equal(t, 2, stub.callCount())
}

func TestService_RequiresID(t *testing.T) {
	svc := newTestService(newMemoryCache(), NewLeadSummarizer())
	_, err := svc.Summarize(context.Background(), domain.NewsItem{Title: "T"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestService_CorruptCacheEntryIgnored(t *testing.T) {
	cache := newMemoryCache()
	cache.data["summary:x"] = []byte("{not json")
	svc := newTestService(cache, NewLeadSummarizer())

	got, err := svc.Summarize(context.Background(), domain.NewsItem{ID: "x", Title: "T", Content: "Real text here."})
	require.NoError(t, err)
	assert.Equal(t, "Real text here.", got.Text)
	assert.Equal(t, "lead", got.Method)
}

func TestService_ExtractiveChainEndToEnd(t *testing.T) {
	svc := newTestService(newMemoryCache(), NewFrequencySummarizer(), NewLeadSummarizer())

	got, err := svc.Summarize(context.Background(), domain.NewsItem{ID: "t", Title: "Headline only"})
	require.NoError(t, err)
	assert.Equal(t, "Headline only", got.Text)
	assert.Equal(t, "lead", got.Method)
}
