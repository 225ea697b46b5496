package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a sliding-window limiter keeping an ordered log of recent
// request times per client key.  It is safe for concurrent use and suitable
// only for single-instance deployments: counts are not shared across
// processes.
//
// Memory per key is bounded by the quota; the key set itself is kept bounded
// by sweeping idle clients whenever a full window has passed since the last
// sweep.
type MemoryLimiter struct {
	requests int
	window   time.Duration

	mu        sync.Mutex
	clients   map[string][]time.Time
	lastSweep time.Time

	now func() time.Time // injectable clock for tests
}

// NewMemoryLimiter builds an in-process limiter allowing `requests` calls
// per `window` for each distinct key.
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		requests: requests,
		window:   window,
		clients:  make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow records the call when permitted.  On rejection the retry hint is the
// time until the oldest retained request falls out of the window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	stamps := l.clients[key]
	// Drop timestamps that have left the window.
	cut := 0
	for cut < len(stamps) && now.Sub(stamps[cut]) > l.window {
		cut++
	}
	stamps = stamps[cut:]

	if len(stamps) >= l.requests {
		retry := int((l.window - now.Sub(stamps[0])).Seconds())
		if retry < 1 {
			retry = 1
		}
		l.clients[key] = stamps
		return false, retry
	}

	l.clients[key] = append(stamps, now)
	return true, 0
}

// sweep removes keys whose newest request is older than the window.  It runs
// at most once per window so the cost stays amortized across calls.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for k, stamps := range l.clients {
		if len(stamps) == 0 || now.Sub(stamps[len(stamps)-1]) > l.window {
			delete(l.clients, k)
		}
	}
}
