// Package cache provides the TTL result cache guarding repeated scans of the
// same token. One entry per address; entries are superseded by newer scans,
// never mutated in place.
package cache

import (
	"sync"
	"time"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/interfaces"
	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/model"
)

// DefaultTTL is how long a cached scan stays servable.
const DefaultTTL = 5 * time.Minute

type entry struct {
	bundle   *model.ScanBundle
	storedAt time.Time
}

// TTLCache is a concurrency-safe map of token address to scan bundle with
// per-entry expiry. Expired entries are evicted lazily on lookup. The clock
// is injected so expiry is testable without sleeping.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ interfaces.ResultCache = (*TTLCache)(nil)

// New builds a cache. A non-positive ttl falls back to DefaultTTL; a nil
// clock uses the wall clock.
func New(ttl time.Duration, now func() time.Time) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TTLCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the live entry for the address. An expired entry is removed
// and reported as a miss.
func (c *TTLCache) Get(tokenAddress string) (*model.ScanBundle, bool) {
	c.mu.RLock()
	e, ok := c.entries[tokenAddress]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresh entry may have landed.
		if cur, ok := c.entries[tokenAddress]; ok && c.now().Sub(cur.storedAt) >= c.ttl {
			delete(c.entries, tokenAddress)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.bundle, true
}

// Set stores the bundle for the address, superseding any previous entry.
func (c *TTLCache) Set(tokenAddress string, bundle *model.ScanBundle) {
	if bundle == nil {
		return
	}
	c.mu.Lock()
	c.entries[tokenAddress] = entry{bundle: bundle, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops the entry for one address.
func (c *TTLCache) Invalidate(tokenAddress string) {
	c.mu.Lock()
	delete(c.entries, tokenAddress)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports how many entries are stored, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
