package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
)

// MockStateStore is an in-memory implementation of service.StateStore for testing.
// Errors can be injected separately for reads and writes, and can be toggled
// mid-test to simulate a durable store going away and coming back.
type MockStateStore struct {
	mu      sync.Mutex
	records map[string]model.PersistedState

	// GetError is returned by Get when set
	GetError error
	// SetError is returned by Set when set
	SetError error
	// GetCount tracks how many times Get was called
	GetCount int
	// SetCount tracks how many times Set was called, failed calls included
	SetCount int
}

// NewMockStateStore creates an empty, healthy mock store.
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{records: make(map[string]model.PersistedState)}
}

// Get returns a copy of the record stored under key, or nil when absent.
func (m *MockStateStore) Get(_ context.Context, key string) (*model.PersistedState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCount++
	if m.GetError != nil {
		return nil, m.GetError
	}
	record, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Set stores state under key.
func (m *MockStateStore) Set(_ context.Context, key string, state model.PersistedState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCount++
	if m.SetError != nil {
		return m.SetError
	}
	m.records[key] = state
	return nil
}

// WithError configures the mock to fail both reads and writes with err.
// Passing nil heals the store.
func (m *MockStateStore) WithError(err error) *MockStateStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetError = err
	m.SetError = err
	return m
}

// WithSetError configures the mock to fail only writes with err.
func (m *MockStateStore) WithSetError(err error) *MockStateStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetError = err
	return m
}

// WithRecord seeds the store with a record, as if another instance wrote it.
func (m *MockStateStore) WithRecord(key string, state model.PersistedState) *MockStateStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = state
	return m
}

// Record returns the record stored under key and whether it exists.
func (m *MockStateStore) Record(key string) (model.PersistedState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[key]
	return record, ok
}

// Counts returns the Get and Set call counts.
func (m *MockStateStore) Counts() (gets, sets int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.GetCount, m.SetCount
}
