package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidar/internal/auth"
	"vidar/internal/model"
	"vidar/internal/repository"
)

var (
	// ErrCredentialsRequired is returned when username or password is blank.
	ErrCredentialsRequired = errors.New("missing username or password")
	// ErrUserExists is returned by Register for a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned by Login for an unknown username.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned by Login when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// AuthService registers and authenticates site accounts. It keeps no session state.
type AuthService interface {
	// Register creates an account; the role is derived from the username.
	Register(ctx context.Context, username, password string) error

	// Login verifies the credentials and returns the public descriptor of the account.
	Login(ctx context.Context, username, password string) (*model.PublicUser, error)
}

type authService struct {
	users repository.UserRepository
	now   func() time.Time
}

// NewAuthService constructs an AuthService over users.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users, now: time.Now}
}

func (s *authService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrCredentialsRequired
	}

	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUserExists
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, &model.User{
		Username:  username,
		Hash:      hash,
		Salt:      salt,
		Role:      auth.RoleFor(username),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		// lost a race with a concurrent registration of the same name
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.PublicUser, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !auth.VerifyPassword(password, u.Hash, u.Salt) {
		return nil, ErrInvalidPassword
	}
	pub := u.Public()
	return &pub, nil
}
