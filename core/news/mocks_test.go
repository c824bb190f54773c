package news

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/preferences"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// memoryCache is a map-backed Cache that records TTLs
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

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}

// memStore is an in-memory PreferenceStore
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memStore) GetString(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", interfaces.ErrPreferenceNotFound
	}
	return v, nil
}

func (m *memStore) PutString(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// newTestPrefs builds a real preferences repository holding feeds
func newTestPrefs(t *testing.T, feeds ...domain.Feed) *preferences.Repository {
	t.Helper()
	data, err := json.Marshal(feeds)
	if err != nil {
		t.Fatalf("marshal feeds: %v", err)
	}
	store := &memStore{values: map[string]string{preferences.KeyFeeds: string(data)}}
	return preferences.NewRepository(store, &mockLogger{})
}

// feedServer maps feed URLs to RSS bodies and counts requests
type feedServer struct {
	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
	hits   map[string]int
	gate   chan struct{}
}

func newFeedServer() *feedServer {
	return &feedServer{
		bodies: make(map[string]string),
		status: make(map[string]int),
		hits:   make(map[string]int),
	}
}

func (f *feedServer) client() *mockHTTPClient {
	return &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		if f.gate != nil {
			select {
			case <-f.gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits[url]++
		if code, ok := f.status[url]; ok {
			return &mockResponse{statusCode: code}, nil
		}
		body, ok := f.bodies[url]
		if !ok {
			return &mockResponse{statusCode: 404}, nil
		}
		return &mockResponse{statusCode: 200, body: body}, nil
	}}
}

func (f *feedServer) hitCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[url]
}

// recordingQueue runs thumbnail lookups synchronously
type recordingQueue struct {
	mu     sync.Mutex
	links  []string
	images map[string]string
}

func (q *recordingQueue) Enqueue(ctx context.Context, links []string, done func(map[string]string)) error {
	q.mu.Lock()
	q.links = append(q.links, links...)
	q.mu.Unlock()
	done(q.images)
	return nil
}
