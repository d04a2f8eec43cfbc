package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a process-local Cache used in tests and single-node runs
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.data, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Len returns the number of stored entries, expired ones included
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
