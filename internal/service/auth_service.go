package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maghami/ticketline/internal/model"
	"github.com/maghami/ticketline/internal/repository"
	"github.com/maghami/ticketline/internal/utils"
)

// ErrUsernameRequired rejects registration with a blank username.
var ErrUsernameRequired = errors.New("username required")

// ErrPasswordTooShort rejects registration with a password shorter
// than six characters.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// ErrInvalidCredentials is returned for any login failure. Unknown
// username and wrong password produce the same error on purpose.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the credential store consumed by the auth service.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// AuthService handles registration and login. Tokens are stateless:
// once issued they are verified purely by signature and expiry, so
// the service keeps no session state.
type AuthService struct {
	users      UserStore
	jwtSecret  string
	accessTTL  time.Duration
	bcryptCost int
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, jwtSecret string, accessTTL time.Duration, bcryptCost int) *AuthService {
	if users == nil {
		panic("nil user store passed to NewAuthService")
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, accessTTL: accessTTL, bcryptCost: bcryptCost}
}

// Register validates the username and password, hashes the password
// and persists the new user. The plaintext password is neither stored
// nor logged.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.users.Create(ctx, username, hash); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return repository.ErrUsernameExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and issues a signed access token.
// A missing user and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (utils.AccessToken, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.AccessToken{}, ErrInvalidCredentials
		}
		return utils.AccessToken{}, fmt.Errorf("load user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return utils.AccessToken{}, ErrInvalidCredentials
	}
	tok, err := utils.NewAccessToken(s.jwtSecret, u.ID, u.Username, s.accessTTL)
	if err != nil {
		return utils.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}
