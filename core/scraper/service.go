// ABOUTME: Scraper service extracts full article text from web pages
// ABOUTME: Tries go-readability first and falls back to a list of content patterns

package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
)

const (
	cacheKeyPrefix = "article:"
	cacheTTL       = time.Hour

	// minReadableChars is the text length below which readability output is distrusted
	minReadableChars = 200

	maxPageBytes     = 5 << 20
	defaultBatchSize = 5

	statusOK    = "ok"
	statusError = "error"
)

// Service extracts articles through the injected HTTP client
type Service struct {
	deps        interfaces.Dependencies
	concurrency int
}

// NewService creates a scraper. concurrency <= 0 uses the default batch width.
func NewService(deps interfaces.Dependencies, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = defaultBatchSize
	}
	return &Service{deps: deps, concurrency: concurrency}
}

// ExtractBatch extracts every URL concurrently. Results keep input order.
func (s *Service) ExtractBatch(ctx context.Context, urls []string) []domain.Article {
	results := make([]domain.Article, len(urls))
	semaphore := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(index int, pageURL string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				results[index] = failed(pageURL, ctx.Err())
				return
			}

			results[index] = s.Extract(ctx, pageURL)
		}(i, u)
	}

	wg.Wait()
	return results
}

// Extract returns the article at pageURL. Failures are reported through
// Status and Error on the result and are never cached.
func (s *Service) Extract(ctx context.Context, pageURL string) domain.Article {
	parsed, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return failed(pageURL, fmt.Errorf("invalid article URL %q", pageURL))
	}

	key := cacheKeyPrefix + pageURL
	if cached, ok := s.cached(ctx, key); ok {
		return cached
	}

	page, err := s.fetch(ctx, parsed.String())
	if err != nil {
		s.deps.Logger.Error("Failed to fetch article", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return failed(pageURL, err)
	}

	article, err := extract(page, parsed)
	if err != nil {
		s.deps.Logger.Warn("No article content found", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return failed(pageURL, err)
	}
	article.URL = pageURL

	s.deps.Logger.Debug("Article extracted", map[string]interface{}{
		"url":    pageURL,
		"method": article.Method,
		"chars":  len(article.TextContent),
	})

	s.store(ctx, key, article)
	return article
}

// fetch downloads the page and decodes it to UTF-8
func (s *Service) fetch(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}

	decoded, err := charset.NewReader(bytes.NewReader(raw), resp.Header("Content-Type"))
	if err != nil {
		// Unknown charset labels fall back to the raw bytes
		return string(raw), nil
	}
	text, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("decode page: %w", err)
	}
	return string(text), nil
}

// extract runs readability and the pattern fallback over a decoded page
func extract(page string, pageURL *url.URL) (domain.Article, error) {
	var fallback *domain.Article

	parsed, err := readability.FromReader(strings.NewReader(page), pageURL)
	if err == nil {
		article := domain.Article{
			Title:       parsed.Title,
			Byline:      parsed.Byline,
			SiteName:    parsed.SiteName,
			Image:       parsed.Image,
			Content:     parsed.Content,
			TextContent: strings.TrimSpace(parsed.TextContent),
			Method:      domain.ExtractionReadability,
			Status:      statusOK,
		}
		if len(article.TextContent) >= minReadableChars {
			article.Markdown = toMarkdown(article, pageURL)
			return article, nil
		}
		if article.TextContent != "" {
			fallback = &article
		}
	}

	if article, ok := extractPatterns(page); ok {
		article.Markdown = toMarkdown(article, pageURL)
		return article, nil
	}

	if fallback != nil {
		fallback.Markdown = toMarkdown(*fallback, pageURL)
		return *fallback, nil
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("readability: %w", err)
	}
	return domain.Article{}, fmt.Errorf("no article content found")
}

func failed(pageURL string, err error) domain.Article {
	return domain.Article{URL: pageURL, Status: statusError, Error: err.Error()}
}

func (s *Service) cached(ctx context.Context, key string) (domain.Article, bool) {
	if s.deps.Cache == nil {
		return domain.Article{}, false
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		return domain.Article{}, false
	}

	var article domain.Article
	if err := json.Unmarshal(data, &article); err != nil || article.Status != statusOK {
		return domain.Article{}, false
	}
	return article, true
}

func (s *Service) store(ctx context.Context, key string, article domain.Article) {
	if s.deps.Cache == nil || article.Status != statusOK {
		return
	}

	data, err := json.Marshal(article)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, cacheTTL); err != nil {
		s.deps.Logger.Warn("Article cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
