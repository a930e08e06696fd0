package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"messagely/internal/domain/message"
	messagely_errors "messagely/pkg/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PostgresMessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	const q = `INSERT INTO messages (id, from_username, to_username, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, q, m.ID, m.FromUsername, m.ToUsername, m.Body, m.SentAt); err != nil {
		if isForeignKeyViolation(err) {
			return messagely_errors.New(messagely_errors.ErrNotFound, "no such user: %s", m.ToUsername)
		}
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepository) GetDetail(ctx context.Context, id uuid.UUID) (message.Detail, error) {
	const q = `SELECT m.id, m.body, m.sent_at, m.read_at,
			f.username AS "from_user.username", f.first_name AS "from_user.first_name",
			f.last_name AS "from_user.last_name", f.phone AS "from_user.phone",
			t.username AS "to_user.username", t.first_name AS "to_user.first_name",
			t.last_name AS "to_user.last_name", t.phone AS "to_user.phone"
		FROM messages AS m
		JOIN users AS f ON f.username = m.from_username
		JOIN users AS t ON t.username = m.to_username
		WHERE m.id = $1`

	var d message.Detail
	if err := sqlx.GetContext(ctx, r.db, &d, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return message.Detail{}, messagely_errors.New(messagely_errors.ErrNotFound, "no such message: %s", id)
		}
		return message.Detail{}, fmt.Errorf("get message: %w", err)
	}
	return d, nil
}

// MarkRead keeps an existing read_at, so only the first call changes the row.
func (r *PostgresMessageRepository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) (message.ReadReceipt, error) {
	const q = `UPDATE messages SET read_at = COALESCE(read_at, $2)
		WHERE id = $1
		RETURNING id, read_at`

	var rr message.ReadReceipt
	if err := sqlx.GetContext(ctx, r.db, &rr, q, id, at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return message.ReadReceipt{}, messagely_errors.New(messagely_errors.ErrNotFound, "no such message: %s", id)
		}
		return message.ReadReceipt{}, fmt.Errorf("mark message read: %w", err)
	}
	return rr, nil
}

func (r *PostgresMessageRepository) ListTo(ctx context.Context, username string) ([]message.Counterpart, error) {
	const q = `SELECT m.id, m.body, m.sent_at, m.read_at,
			u.username AS "other.username", u.first_name AS "other.first_name",
			u.last_name AS "other.last_name", u.phone AS "other.phone"
		FROM messages AS m
		JOIN users AS u ON u.username = m.from_username
		WHERE m.to_username = $1
		ORDER BY m.sent_at, m.id`

	return r.list(ctx, q, username)
}

func (r *PostgresMessageRepository) ListFrom(ctx context.Context, username string) ([]message.Counterpart, error) {
	const q = `SELECT m.id, m.body, m.sent_at, m.read_at,
			u.username AS "other.username", u.first_name AS "other.first_name",
			u.last_name AS "other.last_name", u.phone AS "other.phone"
		FROM messages AS m
		JOIN users AS u ON u.username = m.to_username
		WHERE m.from_username = $1
		ORDER BY m.sent_at, m.id`

	return r.list(ctx, q, username)
}

func (r *PostgresMessageRepository) list(ctx context.Context, q, username string) ([]message.Counterpart, error) {
	items := []message.Counterpart{}
	if err := sqlx.SelectContext(ctx, r.db, &items, q, username); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return items, nil
}
