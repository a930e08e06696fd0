package services

import (
	"context"
	"errors"
	"net/http"

	messagely_errors "messagely/pkg/errors"
	"messagely/pkg/logger"
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, messagely_errors.ErrValidation), errors.Is(err, messagely_errors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, messagely_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, messagely_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, messagely_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, messagely_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var usernameKey ctxKey = "username"

// WithUsername stores the authenticated username. It is also exposed to the logger.
func WithUsername(ctx context.Context, username string) context.Context {
	ctx = context.WithValue(ctx, usernameKey, username)
	return context.WithValue(ctx, logger.UsernameKey, username)
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
