package service

import (
	"context"
	"time"

	"github.com/Eursukkul/airline-ops/pkg/cache"
)

const searchCachePrefix = "flights:search:"

// SearchCache stores flight search results. A nil cache disables caching.
type SearchCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	DelPattern(ctx context.Context, pattern string)
}

var _ SearchCache = (*cache.Redis)(nil)

func invalidateSearchCache(ctx context.Context, c SearchCache) {
	if c == nil {
		return
	}
	c.DelPattern(ctx, searchCachePrefix+"*")
}
