package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FinPainel/internal/models"
)

// UserRepository defines the persistence operations required by the
// user service.
type UserRepository interface {
	List(ctx context.Context) ([]models.UserRecord, error)
	GetByID(ctx context.Context, id string) (models.UserRecord, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, u models.UserRecord) error
	Update(ctx context.Context, u models.UserRecord) error
}

// ClientEmailChecker is the slice of the client store the user service
// needs for cross-entity email uniqueness.
type ClientEmailChecker interface {
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
}

// UserService implements user operations.
type UserService struct {
	users   UserRepository
	clients ClientEmailChecker
}

// NewUserService constructs a UserService.
func NewUserService(users UserRepository, clients ClientEmailChecker) *UserService {
	return &UserService{users: users, clients: clients}
}

// List returns the full user collection.
func (s *UserService) List(ctx context.Context) ([]models.UserRecord, error) {
	return s.users.List(ctx)
}

// Create adds a user with a bcrypt-hashed password. An email already
// held by any user or client yields ErrDuplicateEmail.
func (s *UserService) Create(ctx context.Context, in models.UsuarioInput) (models.UserRecord, error) {
	if err := s.checkEmail(ctx, in.Email, ""); err != nil {
		return models.UserRecord{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserRecord{}, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	record := models.UserRecord{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     active,
	}
	if err := s.users.Create(ctx, record); err != nil {
		return models.UserRecord{}, err
	}
	return record, nil
}

// Update patches name, email, role, and, when provided, the password.
func (s *UserService) Update(ctx context.Context, id string, in models.UsuarioInput) (models.UserRecord, error) {
	record, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.UserRecord{}, ErrNotFound
	}
	if err := s.checkEmail(ctx, in.Email, id); err != nil {
		return models.UserRecord{}, err
	}

	record.Name = in.Name
	record.Email = in.Email
	record.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.UserRecord{}, err
		}
		record.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, record); err != nil {
		return models.UserRecord{}, err
	}
	return record, nil
}

// ToggleStatus flips the user's active flag.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (models.UserRecord, error) {
	record, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.UserRecord{}, ErrNotFound
	}
	record.IsActive = !record.IsActive
	if err := s.users.Update(ctx, record); err != nil {
		return models.UserRecord{}, err
	}
	return record, nil
}

func (s *UserService) checkEmail(ctx context.Context, email, excludeID string) error {
	if taken, err := s.users.EmailExists(ctx, email, excludeID); err != nil {
		return err
	} else if taken {
		return ErrDuplicateEmail
	}
	if taken, err := s.clients.EmailExists(ctx, email, ""); err != nil {
		return err
	} else if taken {
		return ErrDuplicateEmail
	}
	return nil
}
