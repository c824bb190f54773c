// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Fetches feeds and article pages with exponential backoff on transient failures

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdesk-api/core/interfaces"
)

const (
	maxRetries       = 3
	defaultUserAgent = "NewsdeskAPI/1.0 (+https://github.com/newsdesk)"
	acceptHeader     = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/html;q=0.8, */*;q=0.5"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
	backoff   time.Duration
}

// Option configures a StandardHTTPClient
type Option func(*StandardHTTPClient)

// WithUserAgent overrides the User-Agent sent with every request
func WithUserAgent(ua string) Option {
	return func(c *StandardHTTPClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithBackoff sets the base delay between retries
func WithBackoff(d time.Duration) Option {
	return func(c *StandardHTTPClient) {
		c.backoff = d
	}
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration, opts ...Option) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		backoff:   100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET request, retrying network errors and 5xx responses
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: base, 2x base
			wait := c.backoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		if attempt < maxRetries-1 {
			resp.Body.Close()
			resp = nil
		}
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
