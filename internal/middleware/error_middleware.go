package middleware

import (
	"net/http"
	"runtime/debug"

	"messagely/internal/services"
	"messagely/internal/transport/httpdto"
	messagely_errors "messagely/pkg/errors"
	"messagely/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 error envelope.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logFor(c, l).Errorf("panic recovered: %v\n%s", r, debug.Stack())
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal server error", http.StatusInternalServerError))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// ErrorHandler renders the last error attached with c.Error when the handler wrote nothing.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := services.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			logFor(c, l).Errorf("request error: %s", err.Error())
		}
		c.JSON(status, httpdto.NewErrorResponse(messagely_errors.PublicMessage(err), status))
	}
}

func abortWithError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	c.AbortWithStatusJSON(status, httpdto.NewErrorResponse(messagely_errors.PublicMessage(err), status))
}

func logFor(c *gin.Context, l *logger.Logger) *logger.Logger {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return l.WithContext(c.Request.Context())
}
