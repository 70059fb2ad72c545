package engine

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Cache is a bounded in-memory LRU memoizer, keyed per adapter category.
// Entries have no TTL and are never invalidated; acceptable staleness is a
// product decision here, not a correctness concern. Safe for concurrent use.
// Duplicate concurrent misses for one key may each go upstream; the last
// write wins and the stored value is never torn.
type Cache struct {
	mu         sync.Mutex
	categories map[string]*lruCategory
	defaultCap int
	caps       map[string]int

	hits   atomic.Int64
	misses atomic.Int64
}

type lruCategory struct {
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key  string
	data []byte
}

// NewCache creates a cache with the given default per-category capacity.
func NewCache(defaultCap int) *Cache {
	if defaultCap <= 0 {
		defaultCap = 100
	}
	return &Cache{
		categories: make(map[string]*lruCategory),
		defaultCap: defaultCap,
		caps:       make(map[string]int),
	}
}

// SetCapacity overrides the entry cap for one category. Call before use.
func (c *Cache) SetCapacity(category string, capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caps[category] = capacity
	if cat, ok := c.categories[category]; ok {
		cat.capacity = capacity
	}
}

func (c *Cache) category(name string) *lruCategory {
	cat, ok := c.categories[name]
	if !ok {
		capacity := c.defaultCap
		if override, ok := c.caps[name]; ok && override > 0 {
			capacity = override
		}
		cat = &lruCategory{
			capacity: capacity,
			order:    list.New(),
			entries:  make(map[string]*list.Element),
		}
		c.categories[name] = cat
	}
	return cat
}

// Get returns the cached bytes for (category, key) and refreshes its recency.
func (c *Cache) Get(category, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, ok := c.categories[category]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	el, ok := cat.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	cat.order.MoveToFront(el)
	c.hits.Add(1)
	return el.Value.(*cacheEntry).data, true
}

// Set stores bytes under (category, key), evicting the least-recently-used
// entry of that category when it is full.
func (c *Cache) Set(category, key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat := c.category(category)
	if el, ok := cat.entries[key]; ok {
		el.Value.(*cacheEntry).data = data
		cat.order.MoveToFront(el)
		return
	}
	for cat.order.Len() >= cat.capacity {
		oldest := cat.order.Back()
		if oldest == nil {
			break
		}
		cat.order.Remove(oldest)
		delete(cat.entries, oldest.Value.(*cacheEntry).key)
	}
	cat.entries[key] = cat.order.PushFront(&cacheEntry{key: key, data: data})
}

// Len reports the entry count of one category.
func (c *Cache) Len(category string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cat, ok := c.categories[category]; ok {
		return cat.order.Len()
	}
	return 0
}

// Stats returns the hit/miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// CategorySearch names the search memoization category; it gets a smaller
// cap than the per-video categories.
const CategorySearch = "search"

// CacheKey builds a deterministic key from parts.
func CacheKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("yt:%x", hash[:12])
}

// CacheLoadJSON tries to load a cached value of type T.
// Returns the decoded value and true on hit; zero value and false on miss or
// decode error.
func CacheLoadJSON[T any](c *Cache, category, key string) (T, bool) {
	var out T
	data, ok := c.Get(category, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it under (category, key).
func CacheStoreJSON[T any](c *Cache, category, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(category, key, data)
}

// CachedProvider memoizes provider calls through a Cache. Only successful
// results are stored; failures always go back upstream on the next call.
type CachedProvider struct {
	upstream Provider
	cache    *Cache
}

// NewCachedProvider wraps p with per-category LRU memoization.
func NewCachedProvider(p Provider, c *Cache) *CachedProvider {
	return &CachedProvider{upstream: p, cache: c}
}

func cached[T any](ctx context.Context, c *Cache, category, key string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := CacheLoadJSON[T](c, category, key); ok {
		return v, nil
	}
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	CacheStoreJSON(c, category, key, v)
	return v, nil
}

func (p *CachedProvider) GetTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	return cached(ctx, p.cache, FieldTranscript, CacheKey(videoID), func(c context.Context) ([]TranscriptSegment, error) {
		return p.upstream.GetTranscript(c, videoID)
	})
}

func (p *CachedProvider) GetMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	return cached(ctx, p.cache, FieldMetadata, CacheKey(videoID), func(c context.Context) (*VideoMetadata, error) {
		return p.upstream.GetMetadata(c, videoID)
	})
}

func (p *CachedProvider) GetStatistics(ctx context.Context, videoID string) (*VideoStatistics, error) {
	return cached(ctx, p.cache, FieldStatistics, CacheKey(videoID), func(c context.Context) (*VideoStatistics, error) {
		return p.upstream.GetStatistics(c, videoID)
	})
}

func (p *CachedProvider) GetComments(ctx context.Context, videoID string, maxResults int) ([]Comment, error) {
	key := CacheKey(videoID, strconv.Itoa(maxResults))
	return cached(ctx, p.cache, FieldComments, key, func(c context.Context) ([]Comment, error) {
		return p.upstream.GetComments(c, videoID, maxResults)
	})
}

func (p *CachedProvider) SearchVideos(ctx context.Context, query string, maxResults int) ([]SearchItem, error) {
	key := CacheKey(query, strconv.Itoa(maxResults))
	return cached(ctx, p.cache, CategorySearch, key, func(c context.Context) ([]SearchItem, error) {
		return p.upstream.SearchVideos(c, query, maxResults)
	})
}

func (p *CachedProvider) GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	return cached(ctx, p.cache, FieldChannelInfo, CacheKey(channelID), func(c context.Context) (*ChannelInfo, error) {
		return p.upstream.GetChannelInfo(c, channelID)
	})
}

func (p *CachedProvider) GetChannelUploads(ctx context.Context, channelID string, maxResults int) ([]UploadItem, error) {
	key := CacheKey(channelID, strconv.Itoa(maxResults))
	return cached(ctx, p.cache, FieldChannelUploads, key, func(c context.Context) ([]UploadItem, error) {
		return p.upstream.GetChannelUploads(c, channelID, maxResults)
	})
}
