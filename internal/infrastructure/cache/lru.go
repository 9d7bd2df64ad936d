// Package cache provides bounded in-memory caches for the application layer.
package cache

import (
	"container/list"
	"sync"

	"github.com/bnema/bezier/internal/application/port"
)

// Stats counts lookups since creation or the last Clear.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// LRU is a thread-safe least-recently-used cache with a fixed capacity.
// Get and Set both refresh an entry's recency.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    map[K]*list.Element
	recency  *list.List // front is most recent
	stats    Stats
}

type slot[K comparable, V any] struct {
	key   K
	value V
}

var _ port.Cache[string, int] = (*LRU[string, int])(nil)

// NewLRU creates a cache holding at most capacity entries; non-positive
// capacities hold one.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: max(capacity, 1),
		index:    make(map[K]*list.Element, max(capacity, 1)),
		recency:  list.New(),
	}
}

// Get returns the cached value for key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.recency.MoveToFront(el)
	return el.Value.(*slot[K, V]).value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*slot[K, V]).value = value
		c.recency.MoveToFront(el)
		return
	}
	for c.recency.Len() >= c.capacity {
		c.evictOldest()
	}
	c.index[key] = c.recency.PushFront(&slot[K, V]{key: key, value: value})
}

// Must hold c.mu.
func (c *LRU[K, V]) evictOldest() {
	el := c.recency.Back()
	if el == nil {
		return
	}
	c.recency.Remove(el)
	delete(c.index, el.Value.(*slot[K, V]).key)
	c.stats.Evictions++
}

// Remove drops key if present.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		c.recency.Remove(el)
		delete(c.index, key)
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// Clear drops every entry and resets the counters.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.index)
	c.recency.Init()
	c.stats = Stats{}
}

// Stats returns the lookup counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
