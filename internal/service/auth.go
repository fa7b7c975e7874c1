// Package service provides the reference backend's business logic,
// delegating storage to repository interfaces.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FinPainel/internal/models"
)

// Shared service errors.
var (
	// ErrInvalidCredentials is returned on unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a target id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail marks an email already used by a user or client.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrDuplicateContact marks a client email or phone already in use.
	ErrDuplicateContact = errors.New("client email or phone already in use")
	// ErrInactiveUser is returned when a deactivated account logs in.
	ErrInactiveUser = errors.New("user is inactive")
)

// AuthUserRepository defines the persistence operations required by the
// authentication service.
type AuthUserRepository interface {
	GetByEmail(ctx context.Context, email string) (models.UserRecord, error)
}

// AuthService authenticates users and issues bearer tokens.
type AuthService struct {
	repo     AuthUserRepository
	secret   string
	tokenTTL time.Duration
}

// NewAuthService constructs an AuthService. tokenTTL defaults to 24h
// when non-positive.
func NewAuthService(repo AuthUserRepository, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Login verifies the credentials and returns a signed HS256 token whose
// payload carries the account's id, email, and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInactiveUser
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}
