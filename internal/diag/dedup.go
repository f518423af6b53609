package diag

import "sync"

// DedupCache remembers failure sites (keyed by their captured stack text) so
// that a failing check at one site is reported at most once.
type DedupCache struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDedupCache returns an empty cache.
func NewDedupCache() *DedupCache {
	return &DedupCache{seen: make(map[string]struct{})}
}

// First records key and reports whether it had not been seen before.
func (c *DedupCache) First(key string) bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[key]; ok {
		return false
	}
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	c.seen[key] = struct{}{}
	return true
}

// Seen reports whether key was recorded.
func (c *DedupCache) Seen(key string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[key]
	return ok
}

// Len returns the number of recorded sites.
func (c *DedupCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// Reset forgets every recorded site.
func (c *DedupCache) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.seen = make(map[string]struct{})
	c.mu.Unlock()
}
