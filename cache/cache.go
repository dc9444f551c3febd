package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// The cache holds large objects that are expensive to build and never change
// once built, such as lexicons. Concurrent misses for the same key share one
// load; a failed load is not stored, so the next Get tries again.

type LoadFunc[V any] func(key string) (V, error)

type Cache[V any] struct {
	mu      sync.RWMutex
	objects map[string]V
	group   singleflight.Group
}

func New[V any]() *Cache[V] {
	return &Cache[V]{objects: make(map[string]V)}
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.objects[key]
	return obj, ok
}

// Get returns the object stored under key, calling load to build it on a
// miss.
func (c *Cache[V]) Get(key string, load LoadFunc[V]) (V, error) {
	if obj, ok := c.lookup(key); ok {
		return obj, nil
	}
	v, err, shared := c.group.Do(key, func() (any, error) {
		if obj, ok := c.lookup(key); ok {
			return obj, nil
		}
		log.Debug().Str("key", key).Msg("loading-into-cache")
		obj, err := load(key)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.objects[key] = obj
		c.mu.Unlock()
		return obj, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	if shared {
		log.Debug().Str("key", key).Msg("shared-cache-load")
	}
	return v.(V), nil
}

// Peek returns the object stored under key without loading it.
func (c *Cache[V]) Peek(key string) (V, bool) {
	return c.lookup(key)
}

func (c *Cache[V]) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, key)
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.objects)
}
