// Package ratelimit provides per-client request throttling with two
// interchangeable strategies: an in-process sliding window for single
// instance deployments and a Redis-backed fixed window that stays correct
// across instances.  Both implement the same Limiter contract; the active
// strategy is chosen once at startup.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a request from the given client key may proceed.
// When the request is rejected, retryAfter carries the number of seconds the
// client should wait before retrying.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter int)
}

// New selects a strategy: Redis-backed fixed window when a client is
// available, in-process sliding window otherwise.
func New(requests int, window time.Duration, rdb *redis.Client) Limiter {
	if rdb != nil {
		return NewRedisLimiter(rdb, requests, window)
	}
	return NewMemoryLimiter(requests, window)
}
