// Package ratelimit implements fixed-window request counters.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"praisetabernacle/internal/domain"
)

type window struct {
	start time.Time
	count int
	ttl   time.Duration
}

// MemoryLimiter keeps counters in process memory. Counters are lost on restart and
// are not shared between instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]*window
}

// NewMemoryLimiter returns a limiter using the wall clock.
func NewMemoryLimiter() *MemoryLimiter {
	return NewMemoryLimiterWithClock(time.Now)
}

// NewMemoryLimiterWithClock returns a limiter reading time from now.
func NewMemoryLimiterWithClock(now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{now: now, entries: make(map[string]*window)}
}

var _ domain.RateLimiter = (*MemoryLimiter)(nil)

// Allow counts one request for key. The request is denied once the count within
// the current window exceeds max. A window starts at the first request made after
// start+win; a request at exactly start+win still counts against the old window.
func (l *MemoryLimiter) Allow(_ context.Context, key string, max int, win time.Duration) (domain.RateLimitResult, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.Sub(e.start) > e.ttl {
		l.pruneLocked(now)
		e = &window{start: now, ttl: win}
		l.entries[key] = e
	}
	e.count++
	if e.count > max {
		return domain.RateLimitResult{Allowed: false, RetryAfterSeconds: retryAfter(e.start.Add(e.ttl).Sub(now))}, nil
	}
	return domain.RateLimitResult{Allowed: true}, nil
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *MemoryLimiter) pruneLocked(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.start) > e.ttl {
			delete(l.entries, k)
		}
	}
}

func retryAfter(remaining time.Duration) int {
	secs := int(math.Ceil(remaining.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
