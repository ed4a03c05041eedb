package account

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// UserRepository defines the persistence interface for accounts.
type UserRepository interface {
	// Create inserts the user and sets its ID and CreatedAt. Patient accounts
	// also get an empty patient record. Returns ErrUsernameTaken on conflict.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
