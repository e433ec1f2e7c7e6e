package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry is a cached value and the moment it was built.
type Entry[V any] struct {
	Value V
	Built time.Time
	TTL   time.Duration
}

// IsExpired reports whether the entry outlived its TTL. A zero TTL expires
// immediately.
func (e *Entry[V]) IsExpired() bool {
	if e.TTL == 0 {
		return true
	}
	return time.Since(e.Built) > e.TTL
}

// Cache keeps values by key for a fixed TTL. Concurrent misses on the same
// key share a single build.
type Cache[V any] struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]*Entry[V]
	sf      singleflight.Group
}

// New creates a cache. ttl <= 0 disables caching, every Get builds.
func New[V any](ttl time.Duration) *Cache[V] {
	if ttl < 0 {
		ttl = 0
	}
	return &Cache[V]{ttl: ttl, entries: make(map[string]*Entry[V])}
}

// Get returns the fresh value stored under key or builds it. hit reports
// whether the value came from the cache. Build errors are not cached.
func (c *Cache[V]) Get(ctx context.Context, key string, build func(context.Context) (V, error)) (value V, hit bool, err error) {
	if e, ok := c.fresh(key); ok {
		return e.Value, true, nil
	}

	result, err, _ := c.sf.Do(key, func() (any, error) {
		// Another caller may have stored it while we waited.
		if e, ok := c.fresh(key); ok {
			return e, nil
		}

		v, err := build(ctx)
		if err != nil {
			return nil, err
		}
		e := &Entry[V]{Value: v, Built: time.Now(), TTL: c.ttl}
		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = e
			c.mu.Unlock()
		}
		return e, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return result.(*Entry[V]).Value, false, nil
}

// Invalidate drops the value stored under key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) fresh(key string) (*Entry[V], bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || e.IsExpired() {
		return nil, false
	}
	return e, true
}
