package tracker

import "sync"

// DefaultCacheSize is the number of ids the cache holds before it resets.
const DefaultCacheSize = 100

// Cache is a fast-path set of tracked message ids. Once it grows past its
// limit it is cleared and reseeded with the id being added; it does not
// evict oldest-first.
type Cache struct {
	mu    sync.Mutex
	limit int
	ids   map[string]struct{}
}

func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	return &Cache{limit: limit, ids: make(map[string]struct{})}
}

func (c *Cache) Add(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[id] = struct{}{}
	if len(c.ids) > c.limit {
		c.ids = map[string]struct{}{id: {}}
	}
}

func (c *Cache) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.ids[id]
	return ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}
