package handler

import (
	"messagely/internal/services"
	messagely_errors "messagely/pkg/errors"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body. On failure it records a validation
// error for ErrorHandler and returns false.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(messagely_errors.New(messagely_errors.ErrValidation, "invalid request body"))
		return false
	}
	return true
}

// currentUser returns the username EnsureLoggedIn attached to the request.
func currentUser(c *gin.Context) (string, bool) {
	username, ok := services.UsernameFromContext(c.Request.Context())
	if !ok {
		_ = c.Error(messagely_errors.ErrUnauthorized)
	}
	return username, ok
}
