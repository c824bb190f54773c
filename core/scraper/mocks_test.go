package scraper

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"newsdesk-api/core/interfaces"
)

// mockHTTPClient serves canned pages keyed by URL and counts requests
type mockHTTPClient struct {
	mu    sync.Mutex
	pages map[string]*mockResponse
	hits  map[string]int
}

func newMockHTTPClient() *mockHTTPClient {
	return &mockHTTPClient{pages: make(map[string]*mockResponse), hits: make(map[string]int)}
}

func (m *mockHTTPClient) page(url, body string, headers ...string) {
	resp := &mockResponse{statusCode: 200, body: body, headers: map[string]string{}}
	for i := 0; i+1 < len(headers); i += 2 {
		resp.headers[headers[i]] = headers[i+1]
	}
	m.pages[url] = resp
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits[url]++
	if resp, ok := m.pages[url]; ok {
		return resp, nil
	}
	return &mockResponse{statusCode: 404, body: "not found"}, nil
}

func (m *mockHTTPClient) hitCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits[url]
}

type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int      { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser { return io.NopCloser(strings.NewReader(m.body)) }

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type mockLogger struct{}

func (mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (mockLogger) Info(msg string, fields map[string]interface{})  {}
func (mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (mockLogger) Error(msg string, fields map[string]interface{}) {}
