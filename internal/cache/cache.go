package cache

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache is a thread-safe memo table whose entries are filled at most once.
//
// Concurrent misses on the same key share one call to the fill function.
// A failed fill is not stored, so the next lookup retries it.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	group   singleflight.Group
	keyName func(K) string

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty cache. keyName maps a key to a string that is unique
// among the keys in use; it names the in-flight fill for that key.
func New[K comparable, V any](keyName func(K) string) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]V),
		keyName: keyName,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	return v, ok
}

// Set stores a value, replacing any previous entry.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
}

// GetOrFill returns the cached value for key, calling fill on a miss.
// Only one fill per key runs at a time; callers that arrive while it runs
// wait for its result.
func (c *Cache[K, V]) GetOrFill(key K, fill func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)

	res, err, _ := c.group.Do(c.keyName(key), func() (any, error) {
		// A fill that finished between Get and Do already stored the value.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fill()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	s := Stats{
		Len:    c.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits counts lookups answered from the table.
	Hits uint64
	// Misses counts lookups that went to the fill function, including
	// ones that joined another caller's fill.
	Misses uint64
	// HitRate is Hits over all lookups, 0.0 to 1.0.
	HitRate float64
}
