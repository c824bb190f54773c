// ABOUTME: Summary service builds summaries for news items and caches them
// ABOUTME: Results are cached per item; failures are never cached

package summary

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"newsdesk-api/core/domain"
	apperrors "newsdesk-api/core/errors"
	"newsdesk-api/core/interfaces"
)

const (
	cacheKeyPrefix = "summary:"
	cacheTTL       = 24 * time.Hour
)

// Service summarizes news items through a Chain
type Service struct {
	deps      interfaces.Dependencies
	chain     *Chain
	sentences int
	now       func() time.Time
}

// NewService creates a summary service. sentences <= 0 uses DefaultSentences.
func NewService(deps interfaces.Dependencies, chain *Chain, sentences int) *Service {
	if sentences <= 0 {
		sentences = DefaultSentences
	}
	return &Service{
		deps:      deps,
		chain:     chain,
		sentences: sentences,
		now:       time.Now,
	}
}

// Summarize returns the cached summary of item or produces a new one
func (s *Service) Summarize(ctx context.Context, item domain.NewsItem) (*domain.Summary, error) {
	if item.ID == "" {
		return nil, &apperrors.ValidationError{Field: "id", Message: "item ID is required"}
	}

	key := cacheKeyPrefix + item.ID
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	content := item.Content
	if strings.TrimSpace(content) == "" {
		content = item.Description
	}

	text, method, err := s.chain.Summarize(ctx, Input{
		Title:        item.Title,
		Content:      content,
		MaxSentences: s.sentences,
	})
	if err != nil {
		return nil, apperrors.WrapError(err, "summarize item "+item.ID)
	}

	result := &domain.Summary{
		ItemID:    item.ID,
		Text:      text,
		Sentences: len(SplitSentences(text)),
		Method:    method,
		CreatedAt: s.now().UTC(),
	}
	s.store(ctx, key, result)

	return result, nil
}

func (s *Service) cached(ctx context.Context, key string) (*domain.Summary, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.deps.Logger.Warn("Summary cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var result domain.Summary
	if err := json.Unmarshal(data, &result); err != nil {
		s.deps.Logger.Warn("Discarding corrupt cached summary", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	return &result, true
}

func (s *Service) store(ctx context.Context, key string, result *domain.Summary) {
	if s.deps.Cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, cacheTTL); err != nil {
		s.deps.Logger.Warn("Summary cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
