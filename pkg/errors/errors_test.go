package messagely_errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MatchesKind(t *testing.T) {
	err := New(ErrValidation, "username %q already taken", "alice")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, `username "alice" already taken`, err.Error())
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"custom message", New(ErrForbidden, "cannot read this message"), "cannot read this message"},
		{"bare sentinel", ErrUnauthorized, "unauthorized"},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", ErrNotFound), "not found"},
		{"wrapped custom", fmt.Errorf("ctx: %w", New(ErrNotFound, "no such message")), "no such message"},
		{"unknown", errors.New("pq: connection refused"), "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicMessage(tt.err))
		})
	}
}
