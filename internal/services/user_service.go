package services

import (
	"context"

	"messagely/internal/domain/message"
	"messagely/internal/domain/user"
	"messagely/internal/repository"
	messagely_errors "messagely/pkg/errors"
)

type UserService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewUserService(userRepo repository.UserRepository, messageRepo repository.MessageRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

func (s *UserService) List(ctx context.Context) ([]user.Profile, error) {
	return s.userRepo.List(ctx)
}

// Get returns the full record of username. Only the user themself may read it.
func (s *UserService) Get(ctx context.Context, actor, username string) (user.User, error) {
	if err := ensureSelf(actor, username); err != nil {
		return user.User{}, err
	}
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *UserService) MessagesTo(ctx context.Context, actor, username string) ([]message.Counterpart, error) {
	if err := ensureSelf(actor, username); err != nil {
		return nil, err
	}
	return s.messageRepo.ListTo(ctx, username)
}

func (s *UserService) MessagesFrom(ctx context.Context, actor, username string) ([]message.Counterpart, error) {
	if err := ensureSelf(actor, username); err != nil {
		return nil, err
	}
	return s.messageRepo.ListFrom(ctx, username)
}

func ensureSelf(actor, username string) error {
	if actor == "" {
		return messagely_errors.ErrUnauthorized
	}
	if actor != username {
		return messagely_errors.ErrForbidden
	}
	return nil
}
