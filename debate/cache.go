package debate

import (
	"sync"
	"time"
)

// cacheKey is the composite (topic, model key) cache key.
type cacheKey struct {
	topic    string
	modelKey string
}

type cacheEntry struct {
	result    *Result
	createdAt time.Time
}

// Cache is an in-memory TTL cache of debate results. Entries are never
// evicted; a stale entry is ignored on lookup and overwritten by the next
// successful run for the same key (last write wins).
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[cacheKey]cacheEntry
	now     func() time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached result for (topic, modelKey) if it is still fresh.
func (c *Cache) Get(topic, modelKey string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey{topic: topic, modelKey: modelKey}]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.createdAt.Add(c.ttl)) {
		return nil, false
	}
	return entry.result, true
}

// Put stores a successful result for (topic, modelKey), superseding any
// earlier entry.
func (c *Cache) Put(topic, modelKey string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{topic: topic, modelKey: modelKey}] = cacheEntry{
		result:    result,
		createdAt: c.now(),
	}
}
