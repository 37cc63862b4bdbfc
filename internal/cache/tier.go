package cache

import (
	"context"
	"time"
)

// Tier is one layer of the response cache. The memory tier matches patterns
// as plain substrings; the Redis tier expects glob-style patterns and is
// handed a wildcard-wrapped form by the Manager.
type Tier interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}
