package middleware

import (
	"time"

	"messagely/pkg/logger"

	"github.com/gin-gonic/gin"
)

func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		log := logFor(c, l)
		switch {
		case status >= 500:
			log.Errorf("%s %s %d %s", method, path, status, latency.String())
		case status >= 400:
			log.Warnf("%s %s %d %s", method, path, status, latency.String())
		default:
			log.Infof("%s %s %d %s", method, path, status, latency.String())
		}
	}
}
