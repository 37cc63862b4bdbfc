package cache

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lucassmelendez/ct-backend/pkg/logger"
	"github.com/lucassmelendez/ct-backend/pkg/metrics"
)

// DefaultTTL applies when a caller stores a value without an explicit expiry.
const DefaultTTL = 5 * time.Minute

// MemoryStats describes the local tier for the stats endpoint.
type MemoryStats struct {
	Keys    int     `json:"keys"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hitRate"`
}

// RedisStats describes the remote tier for the stats endpoint.
type RedisStats struct {
	Enabled   bool `json:"enabled"`
	Connected bool `json:"connected"`
}

// Stats aggregates both tiers.
type Stats struct {
	Memory MemoryStats `json:"memory"`
	Redis  RedisStats  `json:"redis"`
}

// Manager coordinates the in-process tier with an optional remote tier.
// Reads consult the local tier first and fall back to the remote one,
// backfilling local entries on a remote hit. Remote failures are logged
// and never surfaced to callers; a request must not fail because the
// cache is unhealthy.
type Manager struct {
	local  *MemoryTier
	remote Tier
	log    *zap.Logger
}

// NewManager builds the cache facade. remote may be nil when Redis is not
// configured, leaving the local tier as the only storage.
func NewManager(local *MemoryTier, remote Tier) *Manager {
	if local == nil {
		local = NewMemoryTier()
	}
	return &Manager{
		local:  local,
		remote: remote,
		log:    logger.WithModule("cache"),
	}
}

// Get returns the cached value for key, reporting whether it was found.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool) {
	if value, ok, _ := m.local.Get(ctx, key); ok {
		metrics.CacheLookups.WithLabelValues("memory", "hit").Inc()
		return value, true
	}
	metrics.CacheLookups.WithLabelValues("memory", "miss").Inc()

	if m.remote == nil {
		return nil, false
	}

	value, ok, err := m.remote.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("redis", "error").Inc()
		m.log.Warn("remote cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("redis", "miss").Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("redis", "hit").Inc()
	// Backfill the local tier so the next read is served in-process. The
	// remote entry's remaining TTL is unknown, so the default applies.
	if err := m.local.Set(ctx, key, value, DefaultTTL); err != nil {
		m.log.Warn("local cache backfill failed", zap.String("key", key), zap.Error(err))
	}
	return value, true
}

// Set stores a value in both tiers. ttl<=0 falls back to DefaultTTL.
func (m *Manager) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if err := m.local.Set(ctx, key, value, ttl); err != nil {
		m.log.Warn("local cache set failed", zap.String("key", key), zap.Error(err))
	}
	if m.remote == nil {
		return
	}
	if err := m.remote.Set(ctx, key, value, ttl); err != nil {
		m.log.Warn("remote cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes keys from both tiers.
func (m *Manager) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := m.local.Delete(ctx, keys...); err != nil {
		m.log.Warn("local cache delete failed", zap.Error(err))
	}
	if m.remote == nil {
		return
	}
	if err := m.remote.Delete(ctx, keys...); err != nil {
		m.log.Warn("remote cache delete failed", zap.Error(err))
	}
}

// InvalidatePattern removes every entry whose key contains pattern as a
// substring, in both tiers. It returns the number of local entries removed;
// remote removals are best-effort.
func (m *Manager) InvalidatePattern(ctx context.Context, pattern string) int {
	removed := 0

	localKeys, err := m.local.Keys(ctx, pattern)
	if err == nil && len(localKeys) > 0 {
		if err := m.local.Delete(ctx, localKeys...); err == nil {
			removed = len(localKeys)
		}
	}

	if m.remote != nil {
		remoteKeys, err := m.remote.Keys(ctx, "*"+escapeGlob(pattern)+"*")
		if err != nil {
			m.log.Warn("remote cache pattern scan failed", zap.String("pattern", pattern), zap.Error(err))
		} else if len(remoteKeys) > 0 {
			if err := m.remote.Delete(ctx, remoteKeys...); err != nil {
				m.log.Warn("remote cache pattern delete failed", zap.String("pattern", pattern), zap.Error(err))
			}
		}
	}

	if removed > 0 {
		m.log.Debug("cache invalidated", zap.String("pattern", pattern), zap.Int("removed", removed))
	}
	return removed
}

// Clear empties both tiers.
func (m *Manager) Clear(ctx context.Context) {
	m.local.Flush()

	if m.remote == nil {
		return
	}
	keys, err := m.remote.Keys(ctx, "*")
	if err != nil {
		m.log.Warn("remote cache clear scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := m.remote.Delete(ctx, keys...); err != nil {
		m.log.Warn("remote cache clear failed", zap.Error(err))
	}
}

// Sweep drops expired local entries, returning how many were removed.
func (m *Manager) Sweep() int {
	return m.local.Sweep()
}

// Stats reports the state of both tiers. The hit rate is 0 when no lookups
// have happened yet.
func (m *Manager) Stats(ctx context.Context) Stats {
	hits, misses := m.local.Counters()
	total := hits + misses
	rate := 0.0
	if total > 0 {
		rate = float64(hits) / float64(total)
	}

	stats := Stats{
		Memory: MemoryStats{
			Keys:    m.local.Len(),
			Hits:    hits,
			Misses:  misses,
			HitRate: rate,
		},
	}

	if m.remote != nil {
		stats.Redis.Enabled = true
		stats.Redis.Connected = m.remoteConnected(ctx)
	}
	return stats
}

func (m *Manager) remoteConnected(ctx context.Context) bool {
	pinger, ok := m.remote.(interface {
		Ping(context.Context) error
	})
	if !ok {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return pinger.Ping(ctx) == nil
}

// escapeGlob quotes glob metacharacters so a literal substring pattern is not
// interpreted by the remote KEYS command.
func escapeGlob(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
