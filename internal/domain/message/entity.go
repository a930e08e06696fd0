package message

import (
	"database/sql"
	"time"

	"messagely/internal/domain/user"

	"github.com/google/uuid"
)

// Message represents the messages table
type Message struct {
	ID           uuid.UUID    `db:"id"`
	FromUsername string       `db:"from_username"`
	ToUsername   string       `db:"to_username"`
	Body         string       `db:"body"`
	SentAt       time.Time    `db:"sent_at"`
	ReadAt       sql.NullTime `db:"read_at"`
}

// Detail is a message joined with both participants' profiles.
type Detail struct {
	ID       uuid.UUID    `db:"id"`
	Body     string       `db:"body"`
	SentAt   time.Time    `db:"sent_at"`
	ReadAt   sql.NullTime `db:"read_at"`
	FromUser user.Profile `db:"from_user"`
	ToUser   user.Profile `db:"to_user"`
}

// IsParticipant reports whether username sent or received the message.
func (d Detail) IsParticipant(username string) bool {
	return d.FromUser.Username == username || d.ToUser.Username == username
}

// Counterpart is a message from a user's inbox or outbox joined with the other party's profile.
type Counterpart struct {
	ID     uuid.UUID    `db:"id"`
	Body   string       `db:"body"`
	SentAt time.Time    `db:"sent_at"`
	ReadAt sql.NullTime `db:"read_at"`
	User   user.Profile `db:"other"`
}

// ReadReceipt is the result of marking a message read.
type ReadReceipt struct {
	ID     uuid.UUID `db:"id"`
	ReadAt time.Time `db:"read_at"`
}
