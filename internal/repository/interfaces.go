package repository

import (
	"context"
	"time"

	"messagely/internal/domain/message"
	"messagely/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (user.User, error)
	List(ctx context.Context) ([]user.Profile, error)
	UpdateLoginTimestamp(ctx context.Context, username string, at time.Time) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetDetail(ctx context.Context, id uuid.UUID) (message.Detail, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (message.ReadReceipt, error)
	ListTo(ctx context.Context, username string) ([]message.Counterpart, error)
	ListFrom(ctx context.Context, username string) ([]message.Counterpart, error)
}
