package middleware

import (
	"strings"

	"messagely/internal/services"
	messagely_errors "messagely/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TokenQueryParam is accepted when a client cannot set headers, e.g. a browser websocket.
const TokenQueryParam = "_token"

// EnsureLoggedIn verifies the session token and stores the username on the request context.
func EnsureLoggedIn(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := service.ParseAccessToken(extractToken(c))
		if err != nil {
			abortWithError(c, messagely_errors.ErrUnauthorized)
			return
		}

		ctx := services.WithUsername(c.Request.Context(), claims.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// EnsureCorrectUser requires the :username path parameter to be the logged in user.
// It must run after EnsureLoggedIn.
func EnsureCorrectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := services.UsernameFromContext(c.Request.Context())
		if !ok {
			abortWithError(c, messagely_errors.ErrUnauthorized)
			return
		}
		if c.Param("username") != username {
			abortWithError(c, messagely_errors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := extractBearer(c); token != "" {
		return token
	}
	return c.Query(TokenQueryParam)
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
