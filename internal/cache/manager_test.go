package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRemote is an in-memory stand-in for the Redis tier. It matches keys
// with the glob semantics used by KEYS for the patterns this code emits.
type fakeRemote struct {
	data    map[string][]byte
	failing bool
	pingErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: map[string][]byte{}}
}

func (f *fakeRemote) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failing {
		return nil, false, errors.New("remote down")
	}
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeRemote) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.failing {
		return errors.New("remote down")
	}
	f.data[key] = value
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, keys ...string) error {
	if f.failing {
		return errors.New("remote down")
	}
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeRemote) Keys(ctx context.Context, pattern string) ([]string, error) {
	if f.failing {
		return nil, errors.New("remote down")
	}
	needle := strings.ReplaceAll(strings.Trim(pattern, "*"), `\`, "")
	keys := make([]string, 0)
	for key := range f.data {
		if needle == "" || strings.Contains(key, needle) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (f *fakeRemote) Ping(ctx context.Context) error { return f.pingErr }

func TestManagerLocalFirstWithRemoteBackfill(t *testing.T) {
	remote := newFakeRemote()
	local := NewMemoryTier()
	manager := NewManager(local, remote)
	ctx := context.Background()

	manager.Set(ctx, "finca_1", []byte("payload"), time.Minute)

	// Both tiers hold the value.
	_, ok, _ := local.Get(ctx, "finca_1")
	require.True(t, ok)
	_, ok, _ = remote.Get(ctx, "finca_1")
	require.True(t, ok)

	// Dropping the local tier still serves from remote and backfills.
	local.Flush()
	value, ok := manager.Get(ctx, "finca_1")
	require.True(t, ok)
	require.Equal(t, "payload", string(value))

	_, ok, _ = local.Get(ctx, "finca_1")
	require.True(t, ok)
}

func TestManagerRemoteFailuresAreSwallowed(t *testing.T) {
	remote := newFakeRemote()
	remote.failing = true
	manager := NewManager(NewMemoryTier(), remote)
	ctx := context.Background()

	// None of these should panic or surface an error to the caller.
	manager.Set(ctx, "k", []byte("v"), time.Minute)

	value, ok := manager.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "v", string(value))

	manager.Delete(ctx, "k")
	manager.InvalidatePattern(ctx, "k")
	manager.Clear(ctx)
}

func TestManagerInvalidatePatternBothTiers(t *testing.T) {
	remote := newFakeRemote()
	local := NewMemoryTier()
	manager := NewManager(local, remote)
	ctx := context.Background()

	manager.Set(ctx, "ganado_/api/ganado_1", []byte("a"), time.Minute)
	manager.Set(ctx, "ganado_/api/ganado/5_1", []byte("b"), time.Minute)
	manager.Set(ctx, "finca_/api/fincas_1", []byte("c"), time.Minute)

	removed := manager.InvalidatePattern(ctx, "ganado")
	require.Equal(t, 2, removed)

	_, ok := manager.Get(ctx, "ganado_/api/ganado_1")
	require.False(t, ok)
	_, ok = manager.Get(ctx, "finca_/api/fincas_1")
	require.True(t, ok)

	remoteKeys, err := remote.Keys(ctx, "*")
	require.NoError(t, err)
	require.Len(t, remoteKeys, 1)
}

func TestManagerClear(t *testing.T) {
	remote := newFakeRemote()
	manager := NewManager(NewMemoryTier(), remote)
	ctx := context.Background()

	manager.Set(ctx, "a", []byte("1"), time.Minute)
	manager.Set(ctx, "b", []byte("2"), time.Minute)

	manager.Clear(ctx)

	_, ok := manager.Get(ctx, "a")
	require.False(t, ok)
	require.Empty(t, remote.data)
}

func TestManagerStats(t *testing.T) {
	remote := newFakeRemote()
	local := NewMemoryTier()
	manager := NewManager(local, remote)
	ctx := context.Background()

	// Hit rate reports zero before any lookups.
	stats := manager.Stats(ctx)
	require.Zero(t, stats.Memory.HitRate)
	require.True(t, stats.Redis.Enabled)
	require.True(t, stats.Redis.Connected)

	manager.Set(ctx, "a", []byte("1"), time.Minute)
	manager.Get(ctx, "a")
	manager.Get(ctx, "missing")

	stats = manager.Stats(ctx)
	require.Equal(t, 1, stats.Memory.Keys)
	require.EqualValues(t, 1, stats.Memory.Hits)
	require.InDelta(t, 0.5, stats.Memory.HitRate, 0.01)

	remote.pingErr = errors.New("down")
	stats = manager.Stats(ctx)
	require.False(t, stats.Redis.Connected)
}

func TestManagerWithoutRemote(t *testing.T) {
	manager := NewManager(NewMemoryTier(), nil)
	ctx := context.Background()

	manager.Set(ctx, "solo", []byte("v"), time.Minute)
	value, ok := manager.Get(ctx, "solo")
	require.True(t, ok)
	require.Equal(t, "v", string(value))

	stats := manager.Stats(ctx)
	require.False(t, stats.Redis.Enabled)
	require.False(t, stats.Redis.Connected)
}
