// Package ratelimit defines the limiter contract used by the HTTP middleware
// and an in-process implementation for deployments without Redis.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result contains the result of a rate limit check
type Result struct {
	Allowed   bool          // Whether the action is allowed
	Remaining int           // Remaining actions in the window
	ResetIn   time.Duration // Time until another action is allowed
	Limit     int           // The limit for this action
}

type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// maxIdleKeys bounds the bucket map before idle buckets are swept.
const maxIdleKeys = 10000

// Local is a token bucket per key, refilled at limit per window.
type Local struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func NewLocal(limit int, window time.Duration) *Local {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Local{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *Local) Allow(_ context.Context, key string) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxIdleKeys {
			l.sweep(now)
		}
		bucket = rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit)
		l.buckets[key] = bucket
	}

	allowed := bucket.AllowN(now, 1)
	tokens := bucket.TokensAt(now)

	result := &Result{
		Allowed:   allowed,
		Remaining: int(tokens),
		Limit:     l.limit,
	}
	if tokens < 1 {
		result.ResetIn = time.Duration((1 - tokens) * float64(l.window) / float64(l.limit))
	}
	return result, nil
}

// sweep drops buckets that have refilled completely; they carry no state.
func (l *Local) sweep(now time.Time) {
	for key, bucket := range l.buckets {
		if bucket.TokensAt(now) >= float64(l.limit) {
			delete(l.buckets, key)
		}
	}
}
