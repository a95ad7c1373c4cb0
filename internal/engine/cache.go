package engine

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CacheKey identifies a derived computation: the operation, the input
// table's fingerprint and a canonical rendering of the parameters.
type CacheKey struct {
	Op     string
	Table  uint64
	Params string
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s/%016x/%s", k.Op, k.Table, k.Params)
}

// CacheObserver is notified of every lookup.
type CacheObserver interface {
	CacheHit(op string)
	CacheMiss(op string)
}

// Cache memoizes derived tables. It never evicts; the dataset is static and
// small. Concurrent requests for the same key run the computation once.
type Cache struct {
	mu       sync.RWMutex
	entries  map[CacheKey]interface{}
	group    singleflight.Group
	observer CacheObserver
}

func NewCache(observer CacheObserver) *Cache {
	return &Cache{
		entries:  make(map[CacheKey]interface{}),
		observer: observer,
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key CacheKey) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Errors are returned to every waiter and never stored.
func GetOrCompute[T any](c *Cache, key CacheKey, compute func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		if c.observer != nil {
			c.observer.CacheHit(key.Op)
		}
		return v.(T), nil
	}
	if c.observer != nil {
		c.observer.CacheMiss(key.Op)
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
