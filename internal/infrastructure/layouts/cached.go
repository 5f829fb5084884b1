package layouts

import (
	"context"
	"time"

	"github.com/bigdbm/extractreg/internal/cachemanager"
	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
)

// CachedChecker remembers layouts that were found for ttl.
// Lookups that fail are not remembered, so a newly registered layout is seen immediately.
type CachedChecker struct {
	cache *cachemanager.ReadThroughCache[string, bool, string]
	ttl   time.Duration
}

var _ domain.LayoutChecker = (*CachedChecker)(nil)

// NewCachedChecker wraps inner. A ttl of zero or less disables caching.
func NewCachedChecker(inner domain.LayoutChecker, ttl time.Duration) *CachedChecker {
	manager := cachemanager.NewInMemoryCacheManager[string, bool]("layouts", ttl, cachemanager.DefaultCleanupInterval)
	load := func(ctx context.Context, layoutID string) (bool, error) {
		log.Debug(log.CatLayout, "checking layout", "layout_id", layoutID)
		if err := inner.LayoutExists(ctx, layoutID); err != nil {
			return false, err
		}
		return true, nil
	}
	return &CachedChecker{
		cache: cachemanager.NewReadThroughCache[string, bool, string](manager, load, ttl <= 0),
		ttl:   ttl,
	}
}

// LayoutExists implements domain.LayoutChecker.
func (c *CachedChecker) LayoutExists(ctx context.Context, layoutID string) error {
	_, err := c.cache.Get(ctx, layoutID, layoutID, c.ttl)
	return err
}

// Forget drops layoutID from the cache.
func (c *CachedChecker) Forget(ctx context.Context, layoutID string) error {
	return c.cache.Invalidate(ctx, layoutID)
}
