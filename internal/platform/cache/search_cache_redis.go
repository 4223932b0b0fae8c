// Package cache provides per-session storage for the latest ingredient search results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cookwhat/internal/feature/recipes/domain/entity"
)

// DefaultSearchTTL is used when no TTL is configured.
const DefaultSearchTTL = 10 * time.Minute

// SearchCache stores ingredient search results keyed by session id.
type SearchCache interface {
	Put(ctx context.Context, sessionID string, results []entity.IngredientResult) error
	Get(ctx context.Context, sessionID string) ([]entity.IngredientResult, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSearchCache keeps one JSON list per session under "<namespace>:<sid>".
type RedisSearchCache struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ SearchCache = (*RedisSearchCache)(nil)

// NewRedisSearchCache returns a Redis-backed SearchCache.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "ingsearch".
func NewRedisSearchCache(rdb *redis.Client, ttl time.Duration, namespace string) *RedisSearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	if namespace == "" {
		namespace = "ingsearch"
	}
	return &RedisSearchCache{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Put replaces the session's results and restarts the TTL.
func (c *RedisSearchCache) Put(ctx context.Context, sessionID string, results []entity.IngredientResult) error {
	b, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal search results: %w", err)
	}
	if err := c.rdb.Set(ctx, c.cacheKey(sessionID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("store search results: %w", err)
	}
	return nil
}

// Get returns the session's results. found is false when nothing is cached or the entry expired.
func (c *RedisSearchCache) Get(ctx context.Context, sessionID string) ([]entity.IngredientResult, bool, error) {
	key := c.cacheKey(sessionID)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load search results: %w", err)
	}

	var out []entity.IngredientResult
	if err := json.Unmarshal(b, &out); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false, nil
	}
	return out, true, nil
}

// Delete drops the session's results.
func (c *RedisSearchCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.rdb.Del(ctx, c.cacheKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete search results: %w", err)
	}
	return nil
}

func (c *RedisSearchCache) cacheKey(sessionID string) string {
	return c.namespace + ":" + safe(sessionID)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
