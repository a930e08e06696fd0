package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"messagely/internal/domain/message"
	messagely_errors "messagely/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var detailColumns = []string{
	"id", "body", "sent_at", "read_at",
	"from_user.username", "from_user.first_name", "from_user.last_name", "from_user.phone",
	"to_user.username", "to_user.first_name", "to_user.last_name", "to_user.phone",
}

var counterpartColumns = []string{
	"id", "body", "sent_at", "read_at",
	"other.username", "other.first_name", "other.last_name", "other.phone",
}

func TestMessageRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	m := &message.Message{
		ID:           uuid.New(),
		FromUsername: "alice",
		ToUsername:   "bob",
		Body:         "hi",
		SentAt:       time.Now(),
	}
	mock.ExpectExec(`INSERT INTO messages \(id, from_username, to_username, body, sent_at\)`).
		WithArgs(m.ID.String(), "alice", "bob", "hi", m.SentAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), m))
}

func TestMessageRepository_Create_UnknownRecipient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectExec(`INSERT INTO messages`).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), &message.Message{ID: uuid.New(), ToUsername: "ghost"})
	assert.ErrorIs(t, err, messagely_errors.ErrNotFound)
	assert.Contains(t, err.Error(), "ghost")
}

func TestMessageRepository_GetDetail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	id := uuid.New()
	sent := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(detailColumns).
		AddRow(id.String(), "hi", sent, nil, "alice", "Alice", "Anderson", "555", "bob", "Bob", "Brown", "556")
	mock.ExpectQuery(`FROM messages AS m\s+JOIN users AS f ON f.username = m.from_username\s+JOIN users AS t ON t.username = m.to_username\s+WHERE m.id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(rows)

	d, err := repo.GetDetail(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, d.ID)
	assert.Equal(t, "hi", d.Body)
	assert.Equal(t, sent, d.SentAt)
	assert.False(t, d.ReadAt.Valid)
	assert.Equal(t, "alice", d.FromUser.Username)
	assert.Equal(t, "Anderson", d.FromUser.LastName)
	assert.Equal(t, "bob", d.ToUser.Username)
	assert.Equal(t, "556", d.ToUser.Phone)
}

func TestMessageRepository_GetDetail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery(`WHERE m.id = \$1`).
		WillReturnRows(sqlmock.NewRows(detailColumns))

	_, err := repo.GetDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, messagely_errors.ErrNotFound)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	id := uuid.New()
	firstRead := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE messages SET read_at = COALESCE\(read_at, \$2\)\s+WHERE id = \$1\s+RETURNING id, read_at`).
		WithArgs(id.String(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "read_at"}).AddRow(id.String(), firstRead))

	rr, err := repo.MarkRead(context.Background(), id, time.Now())
	require.NoError(t, err)
	assert.Equal(t, id, rr.ID)
	assert.Equal(t, firstRead, rr.ReadAt)
}

func TestMessageRepository_MarkRead_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery(`UPDATE messages SET read_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "read_at"}))

	_, err := repo.MarkRead(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, messagely_errors.ErrNotFound)
}

func TestMessageRepository_ListTo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	id := uuid.New()
	sent := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	read := sent.Add(time.Minute)
	rows := sqlmock.NewRows(counterpartColumns).
		AddRow(id.String(), "hi", sent, read, "alice", "Alice", "Anderson", "555")
	mock.ExpectQuery(`JOIN users AS u ON u.username = m.from_username\s+WHERE m.to_username = \$1`).
		WithArgs("bob").
		WillReturnRows(rows)

	got, err := repo.ListTo(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "alice", got[0].User.Username)
	assert.True(t, got[0].ReadAt.Valid)
	assert.Equal(t, read, got[0].ReadAt.Time)
}

func TestMessageRepository_ListFrom(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	rows := sqlmock.NewRows(counterpartColumns).
		AddRow(uuid.New().String(), "one", time.Now(), nil, "bob", "Bob", "Brown", "556").
		AddRow(uuid.New().String(), "two", time.Now(), nil, "carol", "Carol", "Clark", "557")
	mock.ExpectQuery(`JOIN users AS u ON u.username = m.to_username\s+WHERE m.from_username = \$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.ListFrom(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].User.Username)
	assert.Equal(t, "carol", got[1].User.Username)
}

func TestMessageRepository_ListFrom_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery(`WHERE m.from_username = \$1`).WillReturnError(errors.New("db down"))

	_, err := repo.ListFrom(context.Background(), "alice")
	assert.ErrorContains(t, err, "db down")
}
