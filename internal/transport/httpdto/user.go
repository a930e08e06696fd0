package httpdto

import (
	"database/sql"
	"time"

	"messagely/internal/domain/user"
)

// ProfileDTO is the public subset of a user.
type ProfileDTO struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UserDTO is the full record returned to its owner.
type UserDTO struct {
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

type UsersResponse struct {
	Users []ProfileDTO `json:"users"`
}

type UserResponse struct {
	User UserDTO `json:"user"`
}

func ToProfileDTO(p user.Profile) ProfileDTO {
	return ProfileDTO{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
	}
}

func ToProfileDTOs(profiles []user.Profile) []ProfileDTO {
	out := make([]ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToProfileDTO(p))
	}
	return out
}

func ToUserDTO(u user.User) UserDTO {
	return UserDTO{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		JoinAt:      u.JoinAt,
		LastLoginAt: nullTime(u.LastLoginAt),
	}
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
