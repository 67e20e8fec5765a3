package store

import (
	"context"
	"sync"
)

// MemoryKeyValueRepository is a process-local [KeyValueRepository]. It backs
// the client when the cache database cannot be opened, and service tests.
type MemoryKeyValueRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKeyValueRepository() *MemoryKeyValueRepository {
	return &MemoryKeyValueRepository{values: make(map[string]string)}
}

func (m *MemoryKeyValueRepository) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryKeyValueRepository) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryKeyValueRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
