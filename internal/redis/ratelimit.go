package redis

import (
	"context"
	"fmt"
	"time"

	"messagely/internal/ratelimit"

	"github.com/redis/go-redis/v9"
)

// Key pattern: ratelimit:{scope}:{key}, e.g. ratelimit:auth:10.0.0.1 or
// ratelimit:messages:alice. Keys expire with the window.

// fixedWindowScript increments the counter for KEYS[1] while it is below ARGV[1]
// and returns {allowed, remaining, ttl_seconds}.
var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')

	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		current = redis.call('INCR', key)
		if current == 1 then
			redis.call('EXPIRE', key, window)
		end
		return {1, limit - current, ttl}
	end
	return {0, 0, ttl}
`)

// RateLimiter is a fixed window counter shared by every instance of the service.
type RateLimiter struct {
	client redis.Scripter
	scope  string
	limit  int
	window time.Duration
}

func NewRateLimiter(client redis.Scripter, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

func (r *RateLimiter) Key(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", r.scope, key)
}

func (r *RateLimiter) Allow(ctx context.Context, key string) (*ratelimit.Result, error) {
	windowSec := int(r.window.Seconds())
	if windowSec < 1 {
		windowSec = 1
	}

	raw, err := fixedWindowScript.Run(ctx, r.client, []string{r.Key(key)}, r.limit, windowSec).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	return parseScriptResult(raw, r.limit)
}

func parseScriptResult(raw interface{}, limit int) (*ratelimit.Result, error) {
	values, ok := raw.([]interface{})
	if !ok || len(values) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	ints := make([]int64, 3)
	for i := range ints {
		v, ok := values[i].(int64)
		if !ok {
			return nil, fmt.Errorf("unexpected rate limit result format")
		}
		ints[i] = v
	}

	return &ratelimit.Result{
		Allowed:   ints[0] == 1,
		Remaining: int(ints[1]),
		ResetIn:   time.Duration(ints[2]) * time.Second,
		Limit:     limit,
	}, nil
}
