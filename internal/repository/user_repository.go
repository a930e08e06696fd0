package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"messagely/internal/domain/user"
	messagely_errors "messagely/pkg/errors"

	"github.com/jmoiron/sqlx"
)

type PostgresUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	const q = `INSERT INTO users (username, password, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING join_at`

	err := r.db.QueryRowxContext(ctx, q, u.Username, u.Password, u.FirstName, u.LastName, u.Phone).Scan(&u.JoinAt)
	if err != nil {
		if isUniqueViolation(err) {
			return messagely_errors.New(messagely_errors.ErrValidation, "username %q already taken", u.Username)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	const q = `SELECT username, password, first_name, last_name, phone, join_at, last_login_at
		FROM users WHERE username = $1`

	var u user.User
	if err := sqlx.GetContext(ctx, r.db, &u, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, messagely_errors.New(messagely_errors.ErrNotFound, "no such user: %s", username)
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]user.Profile, error) {
	const q = `SELECT username, first_name, last_name, phone FROM users ORDER BY username`

	profiles := []user.Profile{}
	if err := sqlx.SelectContext(ctx, r.db, &profiles, q); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return profiles, nil
}

func (r *PostgresUserRepository) UpdateLoginTimestamp(ctx context.Context, username string, at time.Time) error {
	const q = `UPDATE users SET last_login_at = $2 WHERE username = $1`

	res, err := r.db.ExecContext(ctx, q, username, at)
	if err != nil {
		return fmt.Errorf("update login timestamp: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update login timestamp: %w", err)
	}
	if n == 0 {
		return messagely_errors.New(messagely_errors.ErrNotFound, "no such user: %s", username)
	}
	return nil
}
