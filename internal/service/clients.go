package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/atinyakov/FinPainel/internal/models"
)

// ClientRepository defines the persistence operations required by the
// client service.
type ClientRepository interface {
	List(ctx context.Context) ([]models.ClientRecord, error)
	GetByID(ctx context.Context, id string) (models.ClientRecord, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	PhoneExists(ctx context.Context, phone, excludeID string) (bool, error)
	Create(ctx context.Context, c models.ClientRecord) error
	Update(ctx context.Context, c models.ClientRecord) error
}

// UserEmailChecker is the slice of the user store the client service
// needs for cross-entity email uniqueness.
type UserEmailChecker interface {
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
}

// ClientService implements client operations. Email uniqueness is
// enforced across both clients and users; phone uniqueness across
// clients only.
type ClientService struct {
	clients ClientRepository
	users   UserEmailChecker
}

// NewClientService constructs a ClientService.
func NewClientService(clients ClientRepository, users UserEmailChecker) *ClientService {
	return &ClientService{clients: clients, users: users}
}

// List returns the full client collection.
func (s *ClientService) List(ctx context.Context) ([]models.ClientRecord, error) {
	return s.clients.List(ctx)
}

// Create adds a client. New clients start ADIMPLENTE; a taken email or
// phone yields ErrDuplicateContact.
func (s *ClientService) Create(ctx context.Context, in models.ClienteInput) (models.ClientRecord, error) {
	if err := s.checkContact(ctx, in.Email, in.Phone, ""); err != nil {
		return models.ClientRecord{}, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	record := models.ClientRecord{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		IsActive:        active,
		FinancialStatus: models.Adimplente,
	}
	if err := s.clients.Create(ctx, record); err != nil {
		return models.ClientRecord{}, err
	}
	return record, nil
}

// Update patches name, email, phone, and optionally the active flag.
func (s *ClientService) Update(ctx context.Context, id string, in models.ClienteInput) (models.ClientRecord, error) {
	record, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return models.ClientRecord{}, ErrNotFound
	}
	if err := s.checkContact(ctx, in.Email, in.Phone, id); err != nil {
		return models.ClientRecord{}, err
	}

	record.Name = in.Name
	record.Email = in.Email
	record.Phone = in.Phone
	if in.IsActive != nil {
		record.IsActive = *in.IsActive
	}
	if err := s.clients.Update(ctx, record); err != nil {
		return models.ClientRecord{}, err
	}
	return record, nil
}

// ToggleStatus flips the client's active flag.
func (s *ClientService) ToggleStatus(ctx context.Context, id string) (models.ClientRecord, error) {
	record, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return models.ClientRecord{}, ErrNotFound
	}
	record.IsActive = !record.IsActive
	if err := s.clients.Update(ctx, record); err != nil {
		return models.ClientRecord{}, err
	}
	return record, nil
}

// ToggleFinancialStatus flips the client between ADIMPLENTE and
// INADIMPLENTE.
func (s *ClientService) ToggleFinancialStatus(ctx context.Context, id string) (models.ClientRecord, error) {
	record, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return models.ClientRecord{}, ErrNotFound
	}
	if record.FinancialStatus == models.Adimplente {
		record.FinancialStatus = models.Inadimplente
	} else {
		record.FinancialStatus = models.Adimplente
	}
	if err := s.clients.Update(ctx, record); err != nil {
		return models.ClientRecord{}, err
	}
	return record, nil
}

func (s *ClientService) checkContact(ctx context.Context, email, phone, excludeID string) error {
	if taken, err := s.clients.EmailExists(ctx, email, excludeID); err != nil {
		return err
	} else if taken {
		return ErrDuplicateContact
	}
	if taken, err := s.users.EmailExists(ctx, email, ""); err != nil {
		return err
	} else if taken {
		return ErrDuplicateContact
	}
	if phone != "" {
		if taken, err := s.clients.PhoneExists(ctx, phone, excludeID); err != nil {
			return err
		} else if taken {
			return ErrDuplicateContact
		}
	}
	return nil
}
