package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a best-effort JSON cache on redis. A nil client turns every call
// into a miss or a no-op, so callers never branch on whether redis is up.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get decodes the cached value for key into dst and reports whether it hit.
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	CacheLookups.WithLabelValues("hit").Inc()
	return true
}

// Set stores v under key for the cache TTL. Failures are logged and dropped.
func (c *Cache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: set failed")
	}
}

// Delete drops keys. Used to invalidate reports after stock writes.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache: delete failed")
	}
}
