package cache

import (
	"context"

	"cookwhat/internal/feature/recipes/domain/entity"
)

// LookupObserver records cache hits and misses.
type LookupObserver interface {
	ObserveCacheLookup(hit bool)
}

// ObservedSearchCache decorates a SearchCache with hit/miss metrics.
type ObservedSearchCache struct {
	SearchCache
	obs LookupObserver
}

// WithObserver wraps inner so that every Get is counted.
func WithObserver(inner SearchCache, obs LookupObserver) *ObservedSearchCache {
	return &ObservedSearchCache{SearchCache: inner, obs: obs}
}

// Get delegates to the wrapped cache. Errors are not counted.
func (c *ObservedSearchCache) Get(ctx context.Context, sessionID string) ([]entity.IngredientResult, bool, error) {
	out, found, err := c.SearchCache.Get(ctx, sessionID)
	if err == nil {
		c.obs.ObserveCacheLookup(found)
	}
	return out, found, err
}
