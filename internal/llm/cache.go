package llm

import (
	"sync"
	"time"
)

const cacheSweepInterval = 5 * time.Minute

type cacheEntry struct {
	expiry time.Time
	text   string
}

// completionCache remembers completions per prompt until they expire.
type completionCache struct {
	entries  map[string]cacheEntry
	stopCh   chan struct{}
	stopOnce sync.Once
	ttl      time.Duration
	mu       sync.RWMutex
}

// newCompletionCache creates a cache whose entries live for ttl. A
// non-positive ttl means 24 hours.
func newCompletionCache(ttl time.Duration) *completionCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	cache := &completionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	go cache.sweep()

	return cache
}

func (c *completionCache) get(prompt string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[prompt]
	if !ok || time.Now().After(entry.expiry) {
		return "", false
	}
	return entry.text, true
}

func (c *completionCache) set(prompt, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[prompt] = cacheEntry{
		text:   text,
		expiry: time.Now().Add(c.ttl),
	}
}

// sweep periodically drops expired entries.
func (c *completionCache) sweep() {
	ticker := time.NewTicker(cacheSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.removeExpired(time.Now())
		}
	}
}

func (c *completionCache) removeExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
		}
	}
}

func (c *completionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the sweep goroutine. It is safe to call more than once.
func (c *completionCache) Close() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
