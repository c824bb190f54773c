package preferences

import (
	"context"
	"errors"
	"sync"

	"newsdesk-api/core/interfaces"
)

// memStore is an in-memory PreferenceStore
type memStore struct {
	mu     sync.Mutex
	values map[string]string
	putErr error
	puts   int
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
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
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.values[key] = value
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var errStoreDown = errors.New("store unavailable")

// mockLogger discards everything
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
