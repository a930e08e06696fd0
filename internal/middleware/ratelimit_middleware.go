package middleware

import (
	"strconv"

	"messagely/internal/ratelimit"
	"messagely/internal/services"
	messagely_errors "messagely/pkg/errors"
	"messagely/pkg/logger"

	"github.com/gin-gonic/gin"
)

// KeyFunc picks the rate limit key for a request. ok=false skips limiting.
type KeyFunc func(c *gin.Context) (key string, ok bool)

func ByClientIP(c *gin.Context) (string, bool) {
	return c.ClientIP(), true
}

// ByUsername must run after EnsureLoggedIn.
func ByUsername(c *gin.Context) (string, bool) {
	return services.UsernameFromContext(c.Request.Context())
}

// RateLimitMiddleware rejects requests over the limiter's quota with 429.
func RateLimitMiddleware(limiter ratelimit.Limiter, keyFn KeyFunc, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := keyFn(c)
		if !ok {
			c.Next()
			return
		}

		result, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logFor(c, l).Errorf("rate limit check failed: %v", err)
			abortWithError(c, err)
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			abortWithError(c, messagely_errors.New(messagely_errors.ErrRateLimited, "rate limit exceeded"))
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *ratelimit.Result) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
