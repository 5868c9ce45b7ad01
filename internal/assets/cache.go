package assets

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 32

type shard struct {
	mu      sync.RWMutex
	entries map[string]string
}

// Cache is a concurrency-safe memo of rendered fragments keyed by path.
// The zero value is not usable; create one with NewCache.
type Cache struct {
	shards [shardCount]*shard
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[string]string)}
	}
	return c
}

func (c *Cache) shardFor(key string) *shard {
	return c.shards[xxhash.Sum64String(key)%shardCount]
}

// Get returns the fragment stored under key.
func (c *Cache) Get(key string) (string, bool) {
	s := c.shardFor(key)
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	return v, ok
}

// GetOrLoad returns the fragment stored under key, calling load to produce
// it when absent. load runs without holding any lock, so concurrent callers
// for a missing key may each run it; the first stored result is returned to
// all of them. Errors from load are returned and nothing is stored.
func (c *Cache) GetOrLoad(key string, load func() (string, error)) (string, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		return "", err
	}

	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing, nil
	}
	s.entries[key] = v
	return v, nil
}

// Len returns the number of cached fragments.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}
