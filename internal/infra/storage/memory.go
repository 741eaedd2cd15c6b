package storage

import (
	"context"
	"sync"

	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
)

// MemoryStore keeps report text in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, key string, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = []byte(text)
	return "memory://" + key, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
