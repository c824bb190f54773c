package summary

import (
	"context"
	"sync"
	"time"

	"newsdesk-api/core/interfaces"
)

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

// mockLogger records warnings
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

func (m *mockLogger) warnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.warns)
}

// stubSummarizer returns a fixed result and counts calls
type stubSummarizer struct {
	name  string
	text  string
	err   error
	mu    sync.Mutex
	calls int
	last  Input
}

func (s *stubSummarizer) Name() string { return s.name }

func (s *stubSummarizer) Summarize(ctx context.Context, in Input) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = in
	return s.text, s.err
}

func (s *stubSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
