package tenant

import (
	"context"
	"sync"
)

// Cache is the interface for tenant caching implementations.
type Cache interface {
	// Get retrieves a tenant from cache by key.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant in cache.
	Set(ctx context.Context, key string, t *Tenant) error

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, key string) error
}

// BurstCache holds the single most recently resolved tenant. It
// de-duplicates lookups within a navigation burst: repeated resolutions
// of the same identifier hit the cache, while a changed identifier
// displaces the entry and forces a fresh lookup. There is no TTL.
type BurstCache struct {
	mu     sync.RWMutex
	key    string
	tenant *Tenant
}

// NewBurstCache creates an empty single-entry de-duplication cache.
func NewBurstCache() *BurstCache {
	return &BurstCache{}
}

func (c *BurstCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.tenant == nil || c.key != key {
		return nil, false
	}
	return c.tenant, true
}

func (c *BurstCache) Set(ctx context.Context, key string, t *Tenant) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.tenant = t
	return nil
}

func (c *BurstCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key == key {
		c.key = ""
		c.tenant = nil
	}
	return nil
}

// NoOpCache disables caching, useful for testing or when caching is unwanted.
type NoOpCache struct{}

func (n *NoOpCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	return nil, false
}

func (n *NoOpCache) Set(ctx context.Context, key string, t *Tenant) error {
	return nil
}

func (n *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}
