package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/claimlens/claimlens/internal/model"
)

// MemoryCache is an in-process cache suitable for single-node use.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory cache with the given TTL. Expired
// entries are purged at twice the TTL interval.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MemoryCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*model.FactCheckReport, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	report, ok := v.(*model.FactCheckReport)
	return report, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, report *model.FactCheckReport) error {
	c.store.SetDefault(key, report)
	return nil
}

func (c *MemoryCache) Close() error {
	c.store.Flush()
	return nil
}
