package services

import (
	"context"
	"sync"
	"time"

	"messagely/internal/domain/message"
	"messagely/internal/domain/user"
	"messagely/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]user.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.Profile), args.Error(1)
}

func (m *mockUserRepo) UpdateLoginTimestamp(ctx context.Context, username string, at time.Time) error {
	args := m.Called(ctx, username, at)
	return args.Error(0)
}

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *message.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockMessageRepo) GetDetail(ctx context.Context, id uuid.UUID) (message.Detail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(message.Detail), args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (message.ReadReceipt, error) {
	args := m.Called(ctx, id, at)
	return args.Get(0).(message.ReadReceipt), args.Error(1)
}

func (m *mockMessageRepo) ListTo(ctx context.Context, username string) ([]message.Counterpart, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]message.Counterpart), args.Error(1)
}

func (m *mockMessageRepo) ListFrom(ctx context.Context, username string) ([]message.Counterpart, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]message.Counterpart), args.Error(1)
}

type publishedEvent struct {
	channel string
	event   events.Envelope
}

type fakePublisher struct {
	mu        sync.Mutex
	published []publishedEvent
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, event events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{channel: channel, event: event})
	return p.err
}

func (p *fakePublisher) events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.published...)
}
