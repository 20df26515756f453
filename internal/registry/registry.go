// Package registry holds the name→count table used to disambiguate repeated
// snapshot assertions that resolve to the same key.
//
// A Counter lives for one test process. It is never persisted or cleared:
// reordering assertions between runs changes which sequence number a given
// assertion receives, and snapshot files follow the new order.
package registry

import "sync"

// Counter maps a key to the next sequence number for that key.
// The zero value is not usable; call New.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// New returns an empty counter.
func New() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

// Next returns the current sequence number for key and advances it.
// The first call for a key returns 0.
func (c *Counter) Next(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.counts[key]
	c.counts[key] = n + 1
	return n
}

// Peek returns the value the next call to Next(key) would return.
func (c *Counter) Peek(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

// Len reports how many distinct keys have been issued.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counts)
}
