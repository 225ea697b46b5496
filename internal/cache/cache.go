// Package cache provides a Redis-backed key/value cache with JSON values.
// Every operation is advisory: a nil client or a backend failure degrades to
// a miss or a no-op and is only logged, never returned to callers.  The rest
// of the service must behave identically with or without a cache, apart from
// latency.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps an optional Redis client.  The zero value and New(nil) are
// both valid and disable caching entirely.
type Cache struct {
	rdb *redis.Client
}

// New builds a Cache over the given client.  A nil client is allowed and
// yields a no-op cache.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Enabled reports whether a backend is configured.
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get unmarshals the entry for key into dest and reports whether it was a
// hit.  Errors count as misses.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %q failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("cache: decode %q failed: %v", key, err)
		return false
	}
	return true
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: encode %q failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("cache: set %q failed: %v", key, err)
	}
}

// Delete removes the given keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: delete failed: %v", err)
	}
}

// DeletePattern removes every key matching pattern (e.g. "items:list:*").
// SCAN is used instead of KEYS so the iteration never blocks the server.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) {
	if !c.Enabled() {
		return
	}
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: scan %q failed: %v", pattern, err)
		return
	}
	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Printf("cache: delete pattern %q failed: %v", pattern, err)
		}
	}
}
