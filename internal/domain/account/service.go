package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownRole        = errors.New("user type must be patient or physician")
	ErrInvalidUsername    = errors.New("username is required")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// MinPasswordLength is enforced on registration only.
const MinPasswordLength = 8

// dummyHash is compared against when the username does not exist so that
// unknown users take as long to reject as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cvdss-timing-equaliser"), bcrypt.MinCost)

type Service struct {
	users  UserRepository
	cost   int
	logger zerolog.Logger
}

func NewService(users UserRepository, logger zerolog.Logger) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost, logger: logger}
}

// SetHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) SetHashCost(cost int) {
	s.cost = cost
}

// NormalizeUserType trims and lowercases a user type and checks it is known.
func NormalizeUserType(userType string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(userType))
	switch t {
	case UserTypePatient, UserTypePhysician:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, userType)
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	userType, err := NormalizeUserType(req.UserType)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("look up username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{Username: username, PasswordHash: string(hash), UserType: userType}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("user_type", userType).Msg("user registered")
	return user, nil
}

// Authenticate checks the credentials and returns the user. Unknown users and
// wrong passwords both return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn().Int64("user_id", user.ID).Msg("login failed")
		return nil, ErrInvalidCredentials
	}

	// Older rows may carry padded or capitalised types.
	if t, err := NormalizeUserType(user.UserType); err == nil {
		user.UserType = t
	}
	return user, nil
}

// GetUser loads a user by id with the stored type normalized.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t, err := NormalizeUserType(user.UserType); err == nil {
		user.UserType = t
	}
	return user, nil
}
