package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T, requests int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client, requests, window), s
}

func TestRedisLimiter_QuotaEnforced(t *testing.T) {
	l, _ := newRedisLimiter(t, 3, 60*time.Second)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, _ := l.Allow(ctx, "1.2.3.4")
		require.True(t, ok, "request %d should be permitted", i+1)
	}

	ok, retry := l.Allow(ctx, "1.2.3.4")
	assert.False(t, ok, "4th request in window must be rejected")
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 60)
}

func TestRedisLimiter_NewWindowResetsCounter(t *testing.T) {
	l, s := newRedisLimiter(t, 1, 60*time.Second)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	ok, _ := l.Allow(ctx, "1.2.3.4")
	require.True(t, ok)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	require.False(t, ok)

	// Cross into the next window; the prior counter is abandoned and its
	// expiry fires inside Redis.
	now = now.Add(time.Minute)
	s.FastForward(time.Minute)

	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
}

func TestRedisLimiter_RetryAfterTracksTTL(t *testing.T) {
	l, s := newRedisLimiter(t, 1, 60*time.Second)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	l.Allow(ctx, "1.2.3.4")
	s.FastForward(20 * time.Second)

	ok, retry := l.Allow(ctx, "1.2.3.4")
	require.False(t, ok)
	assert.Equal(t, 40, retry, "retry hint should be the counter's remaining TTL")
}

func TestRedisLimiter_FailsOpenOnBackendError(t *testing.T) {
	l, s := newRedisLimiter(t, 1, time.Minute)
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "1.2.3.4")
	require.True(t, ok)

	// Kill the backend: enforcement stops, requests keep flowing.
	s.Close()
	for i := 0; i < 5; i++ {
		ok, retry := l.Allow(ctx, "1.2.3.4")
		assert.True(t, ok, "limiter must fail open when Redis is down")
		assert.Zero(t, retry)
	}
}

func TestNew_PicksStrategyFromClient(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	_, ok := New(10, time.Minute, client).(*RedisLimiter)
	assert.True(t, ok, "expected RedisLimiter when a client is configured")

	_, ok = New(10, time.Minute, nil).(*MemoryLimiter)
	assert.True(t, ok, "expected MemoryLimiter without a client")
}
