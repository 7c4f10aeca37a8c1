package client

import (
	"strings"
	"sync"
	"time"
)

// Cache is the keyed query cache. Reads fetch through it; mutations
// invalidate the key prefixes they affect so read views refresh without a
// full reload.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	data     []byte
	storedAt time.Time
}

// NewCache creates a cache whose entries expire after ttl (0 means never).
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached bytes for key, if fresh.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.data, true
}

// Set stores bytes under key.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, storedAt: time.Now()}
}

// Invalidate drops every entry whose key starts with one of the given
// prefixes and returns how many were dropped.
func (c *Cache) Invalidate(prefixes ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				dropped++
				break
			}
		}
	}
	return dropped
}
