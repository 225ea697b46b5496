package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared through Redis, safe across
// any number of service instances.  Each (key, window) pair maps to one
// counter key "rl:<key>:<window>" that is atomically incremented; the expiry
// is set only by the increment that creates the counter, so a racing EXPIRE
// can never extend a window.
//
// Fixed windows are coarser than the in-process sliding log: a client can
// burst up to twice the quota across a window boundary.  That is accepted in
// exchange for O(1) memory and cross-instance correctness.
type RedisLimiter struct {
	rdb      *redis.Client
	requests int
	window   time.Duration

	now func() time.Time // injectable clock for tests
}

// NewRedisLimiter builds a Redis-backed limiter allowing `requests` calls
// per `window` for each distinct key.
func NewRedisLimiter(rdb *redis.Client, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, requests: requests, window: window, now: time.Now}
}

// Allow increments the current window's counter and compares it to the
// quota.  On rejection the retry hint is the counter's remaining TTL, or the
// full window length when the TTL cannot be read.
//
// Any Redis failure fails OPEN: the request is permitted and the error is
// logged.  Availability is deliberately preferred over strict enforcement.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, int) {
	windowSecs := int64(l.window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}
	windowID := l.now().Unix() / windowSecs
	redisKey := fmt.Sprintf("rl:%s:%d", key, windowID)

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("ratelimit: redis incr failed, failing open: %v", err)
		return true, 0
	}
	if count == 1 {
		// First request in this window: start the expiry clock.
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			log.Printf("ratelimit: redis expire failed: %v", err)
		}
	}

	if count > int64(l.requests) {
		retry := int(windowSecs)
		if ttl, err := l.rdb.TTL(ctx, redisKey).Result(); err == nil && ttl > 0 {
			retry = int(ttl.Seconds())
		}
		if retry < 1 {
			retry = 1
		}
		return false, retry
	}
	return true, 0
}
