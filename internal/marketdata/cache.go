package marketdata

import (
	"sync"
	"time"
)

// Cache is an in-process TTL cache for EOD bar series. An analysis run
// touches the same symbols repeatedly (entry, latest, chart history);
// caching bar fetches keeps one run from hammering the provider. This
// deliberately stays in-process: quote series are run-scoped working
// data, not shared state.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	bars      []Bar
	expiresAt time.Time
}

// NewCache creates a bar cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached series for a key, if present and fresh.
func (c *Cache) Get(key string) ([]Bar, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.bars, true
}

// Set stores a series under a key.
func (c *Cache) Set(key string, bars []Bar) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		bars:      bars,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of live entries. Expired entries still count
// until read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
