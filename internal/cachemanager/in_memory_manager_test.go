package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, bool]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

type layoutKey string

func TestInMemoryCacheManager_TypedKey(t *testing.T) {
	cache := NewInMemoryCacheManager[layoutKey, bool]("layouts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), layoutKey("42"), true, DefaultExpiration)

	got, ok := cache.Get(context.Background(), layoutKey("42"))
	require.True(t, ok)
	require.True(t, got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("layouts", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "42")
	require.False(t, ok)
	require.Empty(t, got)
	require.Equal(t, Stats{Misses: 1}, cache.Stats())
}

func TestInMemoryCacheManager_GetWithInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("layouts", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("42", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "42")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("layouts", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetWithRefresh(context.Background(), "42", time.Hour)
	require.False(t, ok)
	require.Equal(t, "", got)

	cache.Set(context.Background(), "42", "found", time.Millisecond)
	got, ok = cache.GetWithRefresh(context.Background(), "42", time.Hour)
	require.True(t, ok)
	require.Equal(t, "found", got)

	// The refresh replaced the short TTL.
	time.Sleep(5 * time.Millisecond)
	_, ok = cache.Get(context.Background(), "42")
	require.True(t, ok)
}

func TestInMemoryCacheManager_ExpiredEntryMisses(t *testing.T) {
	cache := NewInMemoryCacheManager[string, bool]("layouts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "42", true, time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	_, ok := cache.Get(context.Background(), "42")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, bool]("layouts", DefaultExpiration, DefaultCleanupInterval)
	require.NoError(t, cache.Delete(context.Background()))

	cache.Set(context.Background(), "42", true, DefaultExpiration)
	cache.Set(context.Background(), "43", true, DefaultExpiration)
	require.NoError(t, cache.Delete(context.Background(), "42", "43"))

	_, ok := cache.Get(context.Background(), "42")
	require.False(t, ok)
	_, ok = cache.Get(context.Background(), "43")
	require.False(t, ok)
}

func TestInMemoryCacheManager_FlushAndStats(t *testing.T) {
	cache := NewInMemoryCacheManager[string, bool]("layouts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "42", true, DefaultExpiration)

	_, ok := cache.Get(context.Background(), "42")
	require.True(t, ok)

	require.NoError(t, cache.Flush(context.Background()))

	_, ok = cache.Get(context.Background(), "42")
	require.False(t, ok)
	require.Equal(t, Stats{Hits: 1, Misses: 1}, cache.Stats())
}
