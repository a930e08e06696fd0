package user

import (
	"database/sql"
	"time"
)

// User represents the users table
type User struct {
	Username    string       `db:"username"`
	Password    string       `db:"password"`
	FirstName   string       `db:"first_name"`
	LastName    string       `db:"last_name"`
	Phone       string       `db:"phone"`
	JoinAt      time.Time    `db:"join_at"`
	LastLoginAt sql.NullTime `db:"last_login_at"`
}

// Profile is the public subset of a user shown to other users.
type Profile struct {
	Username  string `db:"username"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Phone     string `db:"phone"`
}

func (u User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
