package account

import (
	"strconv"
	"time"
)

// User types stored in users.user_type. They double as token roles.
const (
	UserTypePatient   = "patient"
	UserTypePhysician = "physician"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	UserType     string    `json:"user_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Subject is the user id as carried in a token.
func (u *User) Subject() string {
	return strconv.FormatInt(u.ID, 10)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	UserType  string    `json:"user_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
