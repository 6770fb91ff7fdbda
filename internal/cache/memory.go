// Package cache provides the in-memory TTL cache used for arrival
// lookups and the on-disk cache for the bus-stop dataset.
package cache

import (
	"sync"
	"time"
)

// item wraps a cached value with its expiration time
type item[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is a generic thread-safe cache with TTL expiration
type Memory[T any] struct {
	items map[string]item[T]
	mu    sync.RWMutex
	ttl   time.Duration
}

// NewMemory creates a cache with the specified TTL
func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{
		items: make(map[string]item[T]),
		ttl:   ttl,
	}
}

// Get retrieves a value, returning (value, true) if found and not expired
func (c *Memory[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		var zero T
		return zero, false
	}
	return item.value, true
}

// Set stores a value with the cache's TTL
func (c *Memory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Size returns the number of items (including expired)
func (c *Memory[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
