package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cookwhat/internal/platform/cache"
)

// NewSearchCache picks the store for per-session ingredient search results.
// Redis is preferred; without it snapshots live in the database.
func NewSearchCache(rdb *redis.Client, db *gorm.DB, ttl time.Duration, obs cache.LookupObserver) *cache.ObservedSearchCache {
	var inner cache.SearchCache
	if rdb != nil {
		inner = cache.NewRedisSearchCache(rdb, ttl, "")
	} else {
		inner = cache.NewGormSearchCache(db, ttl)
	}
	return cache.WithObserver(inner, obs)
}
