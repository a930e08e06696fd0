package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Usernames  []string
	Password   string
	BcryptCost int
}

// DefaultSeedConfig returns the development fixtures: three users sharing one password.
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Usernames:  []string{"alice", "bob", "carol"},
		Password:   "password",
		BcryptCost: bcrypt.DefaultCost,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    int64
	Messages int64
}

const seedUserQuery = `
	INSERT INTO users (username, password, first_name, last_name, phone, join_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (username) DO NOTHING`

const seedMessageQuery = `
	INSERT INTO messages (id, from_username, to_username, body, sent_at)
	VALUES ($1, $2, $3, $4, $5)`

// Seed inserts demo users and one message between each pair of neighbours.
// Existing users are left untouched and a pair only gets its message when at
// least one of the two users was created by this run, so it can be re-run.
func Seed(ctx context.Context, db *sqlx.DB, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	result := &SeedResult{}
	now := time.Now().UTC()
	created := make(map[string]bool, len(cfg.Usernames))

	for i, username := range cfg.Usernames {
		res, err := tx.ExecContext(ctx, seedUserQuery,
			username, string(hash), username, "Seed", fmt.Sprintf("+1555000%04d", i), now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", username, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", username, err)
		}
		created[username] = n > 0
		result.Users += n
	}

	for i := 0; i+1 < len(cfg.Usernames); i++ {
		from, to := cfg.Usernames[i], cfg.Usernames[i+1]
		if !created[from] && !created[to] {
			continue
		}
		body := fmt.Sprintf("Hi %s, this is %s.", to, from)
		if _, err := tx.ExecContext(ctx, seedMessageQuery, uuid.New(), from, to, body, now); err != nil {
			return nil, fmt.Errorf("failed to seed message %s->%s: %w", from, to, err)
		}
		result.Messages++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// Truncate empties every application table.
func Truncate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE TABLE messages, users`)
	return err
}
