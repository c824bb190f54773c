// ABOUTME: Metadata extraction service for finding article thumbnails on web pages
// ABOUTME: Uses colly to scrape Open Graph, Twitter card and JSON-LD image hints

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"newsdesk-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
)

const (
	collyUserAgent   = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	metadataCacheTTL = 24 * time.Hour
	batchConcurrency = 10
)

// MetadataService handles metadata extraction from URLs
type MetadataService struct {
	deps    interfaces.Dependencies
	timeout time.Duration
}

// NewMetadataService creates a new metadata service
func NewMetadataService(deps interfaces.Dependencies) *MetadataService {
	return &MetadataService{
		deps:    deps,
		timeout: 10 * time.Second,
	}
}

// ExtractMetadata extracts metadata from a single URL. Results are cached for a day.
func (s *MetadataService) ExtractMetadata(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, errors.New("invalid URL format")
	}

	cacheKey := "metadata:" + targetURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil {
			var result interfaces.MetadataResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.extractFromURL(ctx, targetURL)
	if err != nil {
		return nil, err
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}

	return result, nil
}

// ExtractMetadataBatch extracts metadata for multiple URLs concurrently.
// URLs that fail are absent from the result.
func (s *MetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	results := make(map[string]*interfaces.MetadataResult)
	var mu sync.Mutex
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, batchConcurrency)

	for _, u := range urls {
		wg.Add(1)
		go func(targetURL string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := s.ExtractMetadata(ctx, targetURL)
			if err != nil {
				s.deps.Logger.Debug("Metadata extraction failed", map[string]interface{}{
					"url":   targetURL,
					"error": err.Error(),
				})
				return
			}
			mu.Lock()
			results[targetURL] = result
			mu.Unlock()
		}(u)
	}

	wg.Wait()
	return results
}

// contextTransport binds every collector request to ctx so cancelling it
// aborts dials and body reads
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.ctx.Err(); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// extractFromURL performs the actual metadata extraction in a single visit
func (s *MetadataService) extractFromURL(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	c := colly.NewCollector(
		colly.UserAgent(collyUserAgent),
		colly.MaxBodySize(5*1024*1024),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(s.timeout)
	c.WithTransport(contextTransport{ctx: ctx, base: http.DefaultTransport})

	result := &interfaces.MetadataResult{
		Images: []string{},
	}
	var fallbackImage, jsonLDImage string

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		property := e.Attr("property")
		name := e.Attr("name")
		content := strings.TrimSpace(e.Attr("content"))
		if content == "" {
			return
		}

		switch {
		case property == "og:title" && result.Title == "":
			result.Title = content
		case property == "og:description" && result.Description == "":
			result.Description = content
		case property == "og:image" || property == "og:image:url":
			abs := e.Request.AbsoluteURL(content)
			result.Images = append(result.Images, abs)
			if result.Thumbnail == "" {
				result.Thumbnail = abs
			}
		case name == "twitter:image" || name == "twitter:image:src":
			abs := e.Request.AbsoluteURL(content)
			result.Images = append(result.Images, abs)
		}
	})

	c.OnHTML("head", func(e *colly.HTMLElement) {
		if result.Title == "" {
			if title := e.DOM.Find("title").First().Text(); title != "" {
				result.Title = strings.TrimSpace(title)
			}
		}

		if result.Description == "" {
			e.DOM.Find("meta[name='description']").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				if content, ok := sel.Attr("content"); ok && content != "" {
					result.Description = content
					return false
				}
				return true
			})
		}

		e.DOM.Find("link[rel]").Each(func(_ int, sel *goquery.Selection) {
			href := sel.AttrOr("href", "")
			for _, rv := range strings.Fields(sel.AttrOr("rel", "")) {
				if (rv == "icon" || rv == "apple-touch-icon") && href != "" && result.Favicon == "" {
					result.Favicon = e.Request.AbsoluteURL(href)
				}
			}
		})
	})

	c.OnHTML("script[type='application/ld+json']", func(e *colly.HTMLElement) {
		if jsonLDImage == "" {
			jsonLDImage = imageFromJSONLD(e.Text)
		}
	})

	c.OnHTML("img", func(e *colly.HTMLElement) {
		if fallbackImage != "" {
			return
		}
		if src := e.Attr("src"); src != "" && isSignificantImage(e) {
			fallbackImage = e.Request.AbsoluteURL(src)
		}
	})

	c.OnRequest(func(r *colly.Request) {
		result.Domain = r.URL.Host
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = err
		s.deps.Logger.Debug("Error visiting URL for metadata", map[string]interface{}{
			"url":    targetURL,
			"error":  err.Error(),
			"status": r.StatusCode,
		})
	})

	if err := c.Visit(targetURL); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if visitErr != nil {
		return nil, visitErr
	}

	// Priority: og:image, twitter:image, JSON-LD, first significant <img>
	if result.Thumbnail == "" && len(result.Images) > 0 {
		result.Thumbnail = result.Images[0]
	}
	if result.Thumbnail == "" && jsonLDImage != "" {
		result.Thumbnail = jsonLDImage
	}
	if result.Thumbnail == "" && fallbackImage != "" {
		result.Thumbnail = fallbackImage
		result.Images = append(result.Images, fallbackImage)
	}

	return result, nil
}

// imageFromJSONLD reads the "image" property of a JSON-LD object
func imageFromJSONLD(text string) string {
	var ld map[string]interface{}
	if err := json.Unmarshal([]byte(text), &ld); err != nil {
		return ""
	}

	switch img := ld["image"].(type) {
	case string:
		return img
	case map[string]interface{}:
		if u, ok := img["url"].(string); ok {
			return u
		}
	case []interface{}:
		if len(img) > 0 {
			if u, ok := img[0].(string); ok {
				return u
			}
		}
	}
	return ""
}

// isSignificantImage checks if an image is likely to be content (not logo/icon)
func isSignificantImage(e *colly.HTMLElement) bool {
	width := e.Attr("width")
	height := e.Attr("height")

	if width != "" && height != "" {
		w, _ := strconv.Atoi(width)
		h, _ := strconv.Atoi(height)
		if w < 200 || h < 200 {
			return false
		}
	}

	class := strings.ToLower(e.Attr("class"))
	id := strings.ToLower(e.Attr("id"))
	alt := strings.ToLower(e.Attr("alt"))

	// Skip logos, icons, avatars
	skipPatterns := []string{"logo", "icon", "avatar", "profile", "user", "author"}
	for _, pattern := range skipPatterns {
		if strings.Contains(class, pattern) || strings.Contains(id, pattern) || strings.Contains(alt, pattern) {
			return false
		}
	}

	return true
}
