package handler

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"messagely/internal/domain/message"
	"messagely/internal/domain/user"
	messagely_errors "messagely/pkg/errors"

	"github.com/google/uuid"
)

// memoryStore backs both repositories for handler tests.
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]user.User
	messages map[uuid.UUID]message.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]user.User),
		messages: make(map[uuid.UUID]message.Message),
	}
}

type memoryUserRepo struct{ s *memoryStore }

func (r memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[u.Username]; exists {
		return messagely_errors.New(messagely_errors.ErrValidation, "username already taken")
	}
	u.JoinAt = time.Now().UTC()
	r.s.users[u.Username] = *u
	return nil
}

func (r memoryUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return user.User{}, messagely_errors.New(messagely_errors.ErrNotFound, "no such user: %s", username)
	}
	return u, nil
}

func (r memoryUserRepo) List(context.Context) ([]user.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]user.Profile, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u.Profile())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r memoryUserRepo) UpdateLoginTimestamp(_ context.Context, username string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return messagely_errors.ErrNotFound
	}
	u.LastLoginAt = sql.NullTime{Time: at, Valid: true}
	r.s.users[username] = u
	return nil
}

type memoryMessageRepo struct{ s *memoryStore }

func (r memoryMessageRepo) Create(_ context.Context, m *message.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[m.ToUsername]; !ok {
		return messagely_errors.New(messagely_errors.ErrNotFound, "no such user: %s", m.ToUsername)
	}
	r.s.messages[m.ID] = *m
	return nil
}

func (r memoryMessageRepo) GetDetail(_ context.Context, id uuid.UUID) (message.Detail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return message.Detail{}, messagely_errors.New(messagely_errors.ErrNotFound, "no such message: %s", id)
	}
	return message.Detail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: r.s.users[m.FromUsername].Profile(),
		ToUser:   r.s.users[m.ToUsername].Profile(),
	}, nil
}

func (r memoryMessageRepo) MarkRead(_ context.Context, id uuid.UUID, at time.Time) (message.ReadReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return message.ReadReceipt{}, messagely_errors.ErrNotFound
	}
	if !m.ReadAt.Valid {
		m.ReadAt = sql.NullTime{Time: at, Valid: true}
		r.s.messages[id] = m
	}
	return message.ReadReceipt{ID: id, ReadAt: m.ReadAt.Time}, nil
}

func (r memoryMessageRepo) ListTo(_ context.Context, username string) ([]message.Counterpart, error) {
	return r.list(func(m message.Message) (bool, string) { return m.ToUsername == username, m.FromUsername }), nil
}

func (r memoryMessageRepo) ListFrom(_ context.Context, username string) ([]message.Counterpart, error) {
	return r.list(func(m message.Message) (bool, string) { return m.FromUsername == username, m.ToUsername }), nil
}

func (r memoryMessageRepo) list(match func(message.Message) (bool, string)) []message.Counterpart {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []message.Counterpart{}
	for _, m := range r.s.messages {
		ok, other := match(m)
		if !ok {
			continue
		}
		out = append(out, message.Counterpart{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			User:   r.s.users[other].Profile(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out
}
