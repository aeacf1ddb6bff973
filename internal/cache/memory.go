// Package cache provides the TTL key-value stores used to avoid
// recomputing heavy analytics responses. Both implementations satisfy
// model.Cache; caching is a caller-side optimization and never required
// for correctness.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache guarded by a mutex. Expired entries
// are dropped lazily on Get and swept by a periodic janitor.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

// Get returns the cached value, or false if absent or expired.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value with a TTL.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Clear removes entries whose key contains pattern; an empty pattern
// clears everything.
func (m *Memory) Clear(pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pattern == "" {
		m.entries = make(map[string]entry)
		return
	}
	for key := range m.entries {
		if strings.Contains(key, pattern) {
			delete(m.entries, key)
		}
	}
}

// CleanupExpired drops every expired entry. Run it periodically to bound
// memory on write-heavy keyspaces.
func (m *Memory) CleanupExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}
