package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

const defaultMemoryTTL = 5 * time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryOption customises the memory tier.
type MemoryOption func(*MemoryTier)

// WithMemoryClock injects a clock, primarily for testing.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *MemoryTier) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMemoryDefaultTTL overrides the TTL applied when Set receives ttl <= 0.
func WithMemoryDefaultTTL(ttl time.Duration) MemoryOption {
	return func(m *MemoryTier) {
		if ttl > 0 {
			m.defaultTTL = ttl
		}
	}
}

// MemoryTier is the process-local cache tier. Reads are served from a map
// guarded by a RWMutex with lazy expiry on access; a periodic sweep removes
// lapsed entries that were never read again.
type MemoryTier struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	now        func() time.Time

	hits   int64
	misses int64
}

// NewMemoryTier constructs an empty memory tier.
func NewMemoryTier(opts ...MemoryOption) *MemoryTier {
	tier := &MemoryTier{
		entries:    make(map[string]memoryEntry),
		defaultTTL: defaultMemoryTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(tier)
	}
	return tier
}

// Get returns the cached value for key, counting the lookup as a hit or miss.
// Expired entries are removed on access.
func (m *MemoryTier) Get(ctx context.Context, key string) ([]byte, bool, error) {
	now := m.now()

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && !entry.expired(now) {
		m.mu.Lock()
		m.hits++
		m.mu.Unlock()
		return entry.value, true, nil
	}

	m.mu.Lock()
	m.misses++
	if ok {
		// Lazy expiry: drop the lapsed entry so Keys never reports it.
		if cur, still := m.entries[key]; still && cur.expired(now) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()

	return nil, false, nil
}

// Set stores value under key. A non-positive ttl falls back to the default.
func (m *MemoryTier) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: cp, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Delete removes keys, ignoring missing ones.
func (m *MemoryTier) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}

// Keys returns all live keys containing pattern as a substring. An empty
// pattern matches every key.
func (m *MemoryTier) Keys(ctx context.Context, pattern string) ([]string, error) {
	now := m.now()

	m.mu.RLock()
	matched := make([]string, 0, len(m.entries))
	for key, entry := range m.entries {
		if entry.expired(now) {
			continue
		}
		if strings.Contains(key, pattern) {
			matched = append(matched, key)
		}
	}
	m.mu.RUnlock()

	return matched, nil
}

// Flush discards every entry but keeps hit/miss counters.
func (m *MemoryTier) Flush() {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
}

// Sweep removes every expired entry and reports how many were dropped.
func (m *MemoryTier) Sweep() int {
	now := m.now()

	m.mu.Lock()
	removed := 0
	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}
	m.mu.Unlock()

	return removed
}

// Len reports the number of live entries.
func (m *MemoryTier) Len() int {
	now := m.now()

	m.mu.RLock()
	count := 0
	for _, entry := range m.entries {
		if !entry.expired(now) {
			count++
		}
	}
	m.mu.RUnlock()

	return count
}

// Counters returns the cumulative hit and miss totals.
func (m *MemoryTier) Counters() (hits, misses int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
