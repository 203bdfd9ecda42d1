// Package ratelimit throttles login and registration attempts per client.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a client's bucket survives without traffic.
const idleTTL = 10 * time.Minute

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key (usually the client address).
// A nil *Limiter allows everything.
type Limiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*bucket
	now     func() time.Time
}

// New returns a limiter allowing perMinute attempts per key with the given
// burst. perMinute <= 0 disables limiting and returns nil.
func New(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether key may make another attempt now.
func (l *Limiter) Allow(key string) bool {
	if l == nil {
		return true
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	for k, v := range l.buckets {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(l.buckets, k)
		}
	}

	return b.lim.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
