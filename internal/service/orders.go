package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/FinPainel/internal/models"
)

// OrderRepository defines the persistence operations required by the
// order service.
type OrderRepository interface {
	ListAll(ctx context.Context) ([]models.OrderRecord, error)
	ListByClient(ctx context.Context, clientID string) ([]models.OrderRecord, error)
	GetByID(ctx context.Context, id string) (models.OrderRecord, error)
	Create(ctx context.Context, o models.OrderRecord) error
	Update(ctx context.Context, o models.OrderRecord) error
}

// OrderClientStore is the slice of the client store the order service
// needs to validate ownership and keep adimplência consistent.
type OrderClientStore interface {
	GetByID(ctx context.Context, id string) (models.ClientRecord, error)
	Update(ctx context.Context, c models.ClientRecord) error
}

// OrderService implements order operations. Payment changes recompute
// the owning client's financial status: any unpaid order marks the
// client INADIMPLENTE, none marks it ADIMPLENTE.
type OrderService struct {
	orders  OrderRepository
	clients OrderClientStore
	now     func() time.Time
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderRepository, clients OrderClientStore) *OrderService {
	return &OrderService{orders: orders, clients: clients, now: time.Now}
}

// ListAll returns the full order collection.
func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderRecord, error) {
	return s.orders.ListAll(ctx)
}

// ListByClient returns one client's orders. The client must exist.
func (s *OrderService) ListByClient(ctx context.Context, clientID string) ([]models.OrderRecord, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, ErrNotFound
	}
	return s.orders.ListByClient(ctx, clientID)
}

// Create adds an order to an existing client and refreshes the client's
// financial status.
func (s *OrderService) Create(ctx context.Context, in models.OrdemInput) (models.OrderRecord, error) {
	if _, err := s.clients.GetByID(ctx, in.ClientID); err != nil {
		return models.OrderRecord{}, ErrNotFound
	}

	record := models.OrderRecord{
		ID:          uuid.NewString(),
		Description: in.Description,
		Value:       in.Value,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsPaid:      in.IsPaid,
		ClientID:    in.ClientID,
	}
	if record.IsPaid {
		paidAt := s.now()
		record.PaidAt = &paidAt
	}
	if err := s.orders.Create(ctx, record); err != nil {
		return models.OrderRecord{}, err
	}
	if err := s.refreshClientStatus(ctx, in.ClientID); err != nil {
		return models.OrderRecord{}, err
	}
	return record, nil
}

// TogglePayment flips the order's paid flag, stamping or clearing the
// payment time, and refreshes the owning client's financial status.
func (s *OrderService) TogglePayment(ctx context.Context, id string) (models.OrderRecord, error) {
	record, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return models.OrderRecord{}, ErrNotFound
	}

	record.IsPaid = !record.IsPaid
	if record.IsPaid {
		paidAt := s.now()
		record.PaidAt = &paidAt
	} else {
		record.PaidAt = nil
	}
	if err := s.orders.Update(ctx, record); err != nil {
		return models.OrderRecord{}, err
	}
	if err := s.refreshClientStatus(ctx, record.ClientID); err != nil {
		return models.OrderRecord{}, err
	}
	return record, nil
}

func (s *OrderService) refreshClientStatus(ctx context.Context, clientID string) error {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	orders, err := s.orders.ListByClient(ctx, clientID)
	if err != nil {
		return err
	}

	status := models.Adimplente
	for _, o := range orders {
		if !o.IsPaid {
			status = models.Inadimplente
			break
		}
	}
	if client.FinancialStatus == status {
		return nil
	}
	client.FinancialStatus = status
	return s.clients.Update(ctx, client)
}
