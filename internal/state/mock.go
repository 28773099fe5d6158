// internal/state/mock.go
package state

import (
	"encoding/json"
	"sync"
	"time"
)

// Mock is an in-memory test double for Manager. Values round-trip through
// JSON so decode behavior matches the real store.
type Mock struct {
	mu      sync.Mutex
	values  map[string][]byte
	updated map[string]time.Time
	setErr  error
	closed  bool
}

// NewMock creates a new mock state store for testing.
func NewMock() *Mock {
	return &Mock{
		values:  make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

func (m *Mock) Get(key string, dst any) bool {
	m.mu.Lock()
	data, ok := m.values[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (m *Mock) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	m.updated[key] = time.Now()
	return nil
}

func (m *Mock) SetDeferred(key string, value any) error {
	return m.Set(key, value)
}

func (m *Mock) UpdatedAt(key string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.updated[key]
	return t, ok
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Test helpers

// SetRaw stores data under key without encoding it.
func (m *Mock) SetRaw(key string, data []byte) {
	m.mu.Lock()
	m.values[key] = data
	m.mu.Unlock()
}

// FailWrites makes subsequent writes return err.
func (m *Mock) FailWrites(err error) {
	m.mu.Lock()
	m.setErr = err
	m.mu.Unlock()
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
