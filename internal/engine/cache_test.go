package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyDeterministic(t *testing.T) {
	assert.Equal(t, CacheKey("a", "b"), CacheKey("a", "b"))
	assert.NotEqual(t, CacheKey("a", "b"), CacheKey("a", "c"))
	assert.NotEqual(t, CacheKey("ab"), CacheKey("a", "b"))
}

func TestCacheEvictsOldest(t *testing.T) {
	c := NewCache(2)
	c.Set("cat", "k1", []byte("v1"))
	c.Set("cat", "k2", []byte("v2"))
	c.Set("cat", "k3", []byte("v3"))

	assert.Equal(t, 2, c.Len("cat"))
	_, ok := c.Get("cat", "k1")
	assert.False(t, ok)
	v, ok := c.Get("cat", "k3")
	require.True(t, ok)
	assert.Equal(t, []byte("v3"), v)
}

func TestCacheGetRefreshesRecency(t *testing.T) {
	c := NewCache(2)
	c.Set("cat", "k1", []byte("v1"))
	c.Set("cat", "k2", []byte("v2"))

	_, ok := c.Get("cat", "k1")
	require.True(t, ok)

	c.Set("cat", "k3", []byte("v3"))

	_, ok = c.Get("cat", "k1")
	assert.True(t, ok, "recently used entry survives eviction")
	_, ok = c.Get("cat", "k2")
	assert.False(t, ok, "least recently used entry is evicted")
}

func TestCacheSetExistingUpdates(t *testing.T) {
	c := NewCache(2)
	c.Set("cat", "k1", []byte("v1"))
	c.Set("cat", "k1", []byte("v1b"))

	assert.Equal(t, 1, c.Len("cat"))
	v, ok := c.Get("cat", "k1")
	require.True(t, ok)
	assert.Equal(t, []byte("v1b"), v)
}

func TestCachePerCategoryCapacity(t *testing.T) {
	c := NewCache(100)
	c.SetCapacity(CategorySearch, 1)

	c.Set(CategorySearch, "q1", []byte("r1"))
	c.Set(CategorySearch, "q2", []byte("r2"))
	c.Set(FieldMetadata, "k1", []byte("m1"))
	c.Set(FieldMetadata, "k2", []byte("m2"))

	assert.Equal(t, 1, c.Len(CategorySearch))
	assert.Equal(t, 2, c.Len(FieldMetadata))
	_, ok := c.Get(CategorySearch, "q1")
	assert.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := NewCache(10)
	c.Set("cat", "k1", []byte("v1"))

	c.Get("cat", "k1")
	c.Get("cat", "k1")
	c.Get("cat", "missing")

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("cat", "shared", []byte("v"))
				c.Get("cat", "shared")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len("cat"))
}

func TestCachedProviderMemoizes(t *testing.T) {
	ctx := context.Background()
	p := newFakeProvider()
	cp := NewCachedProvider(p, NewCache(10))

	first, err := cp.GetMetadata(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	second, err := cp.GetMetadata(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, 1, p.callCount(FieldMetadata), "second call is served from cache")
	assert.Equal(t, first, second)

	_, err = cp.GetMetadata(ctx, "jNQXAC9IVRw")
	require.NoError(t, err)
	assert.Equal(t, 2, p.callCount(FieldMetadata), "distinct ids are distinct entries")
}

func TestCachedProviderKeysIncludeMaxResults(t *testing.T) {
	ctx := context.Background()
	p := newFakeProvider()
	cp := NewCachedProvider(p, NewCache(10))

	_, err := cp.GetComments(ctx, "dQw4w9WgXcQ", 10)
	require.NoError(t, err)
	_, err = cp.GetComments(ctx, "dQw4w9WgXcQ", 50)
	require.NoError(t, err)
	_, err = cp.GetComments(ctx, "dQw4w9WgXcQ", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, p.callCount(FieldComments))
}

func TestCachedProviderDoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	p := newFakeProvider()
	p.transcriptErr = Errf(KindBlocked, "blocked")
	cp := NewCachedProvider(p, NewCache(10))

	_, err := cp.GetTranscript(ctx, "dQw4w9WgXcQ")
	require.Error(t, err)
	_, err = cp.GetTranscript(ctx, "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Equal(t, 2, p.callCount(FieldTranscript), "failures go back upstream")

	p.transcriptErr = nil
	segments, err := cp.GetTranscript(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.NotEmpty(t, segments)
	assert.Equal(t, 3, p.callCount(FieldTranscript))

	_, err = cp.GetTranscript(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, 3, p.callCount(FieldTranscript), "success is memoized")
}

func TestCachedProviderSearchCategory(t *testing.T) {
	ctx := context.Background()
	p := newFakeProvider()
	cache := NewCache(10)
	cp := NewCachedProvider(p, cache)

	_, err := cp.SearchVideos(ctx, "golang talks", 10)
	require.NoError(t, err)
	_, err = cp.SearchVideos(ctx, "golang talks", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, p.callCount(CategorySearch))
	assert.Equal(t, 1, cache.Len(CategorySearch))
}
