package tokencache

import (
	"sync"
	"time"

	"github.com/adobe/aio-lib-core-auth/ims"
)

// DefaultTTL is how long a stored token response stays visible.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value     ims.TokenResponse
	expiresAt time.Time
}

// Cache is a fixed-TTL in-memory store for token responses. Entries expire a
// fixed duration after insertion; reads never extend lifetimes. Capacity is
// unbounded except by expiry.
//
// A Cache is safe for concurrent use. The zero value is not usable; call New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// Option is a functional option for configuring a Cache.
type Option func(*Cache)

// WithTTL overrides the default five-minute entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock substitutes the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the live entry for key, if any. Expired entries read as absent
// and are removed on the way out.
func (c *Cache) Get(key string) (ims.TokenResponse, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have replaced it.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key, stamping the insertion time. An existing entry
// is replaced and its clock restarts.
func (c *Cache) Set(key string, value ims.TokenResponse) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear removes every entry immediately and unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len counts entries that are still live.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	now := c.now()
	for _, e := range c.entries {
		if !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}
