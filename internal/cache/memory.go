package cache

import (
	"context"
	"sync"

	"github.com/MereWhiplash/wordspace/internal/types"
)

// Memory is an unbounded in-process cache. Entries are never evicted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]types.Vector
}

// NewMemory creates an empty Memory cache
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]types.Vector)}
}

func (m *Memory) Get(ctx context.Context, word string) (types.Vector, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vec, ok := m.entries[word]
	return vec, ok, nil
}

func (m *Memory) Put(ctx context.Context, word string, vec types.Vector) error {
	stored := vec.Clone()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[word] = stored
	return nil
}

func (m *Memory) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func (m *Memory) Close() error {
	return nil
}
