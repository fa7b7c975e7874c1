// Package repository provides the in-memory stores backing the
// reference backend. State is mutex-guarded and lost on shutdown; the
// production backend owns real persistence.
package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/atinyakov/FinPainel/internal/models"
)

// ErrNotFound is returned when an id does not exist in a store.
var ErrNotFound = errors.New("not found")

// MemoryUserRepository stores user records in insertion order.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.UserRecord
}

// NewMemoryUserRepository creates an empty user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

// List returns all users in insertion order.
func (r *MemoryUserRepository) List(ctx context.Context) ([]models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.UserRecord, len(r.users))
	copy(out, r.users)
	return out, nil
}

// GetByID returns the user with the given id.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.UserRecord{}, ErrNotFound
}

// GetByEmail returns the user with the given email (case-insensitive).
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	needle := strings.ToLower(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.ToLower(u.Email) == needle {
			return u, nil
		}
	}
	return models.UserRecord{}, ErrNotFound
}

// EmailExists reports whether any user other than excludeID holds the
// email (case-insensitive).
func (r *MemoryUserRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	needle := strings.ToLower(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID != excludeID && strings.ToLower(u.Email) == needle {
			return true, nil
		}
	}
	return false, nil
}

// Create appends a new user record.
func (r *MemoryUserRepository) Create(ctx context.Context, u models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, u)
	return nil
}

// Update replaces the record with the same id.
func (r *MemoryUserRepository) Update(ctx context.Context, u models.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = u
			return nil
		}
	}
	return ErrNotFound
}

// MemoryClientRepository stores client records in insertion order.
type MemoryClientRepository struct {
	mu      sync.RWMutex
	clients []models.ClientRecord
}

// NewMemoryClientRepository creates an empty client store.
func NewMemoryClientRepository() *MemoryClientRepository {
	return &MemoryClientRepository{}
}

// List returns all clients in insertion order.
func (r *MemoryClientRepository) List(ctx context.Context) ([]models.ClientRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ClientRecord, len(r.clients))
	copy(out, r.clients)
	return out, nil
}

// GetByID returns the client with the given id.
func (r *MemoryClientRepository) GetByID(ctx context.Context, id string) (models.ClientRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.ClientRecord{}, ErrNotFound
}

// EmailExists reports whether any client other than excludeID holds the
// email (case-insensitive).
func (r *MemoryClientRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	needle := strings.ToLower(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.ID != excludeID && strings.ToLower(c.Email) == needle {
			return true, nil
		}
	}
	return false, nil
}

// PhoneExists reports whether any client other than excludeID holds the
// phone.
func (r *MemoryClientRepository) PhoneExists(ctx context.Context, phone, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.ID != excludeID && c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

// Create appends a new client record.
func (r *MemoryClientRepository) Create(ctx context.Context, c models.ClientRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append(r.clients, c)
	return nil
}

// Update replaces the record with the same id.
func (r *MemoryClientRepository) Update(ctx context.Context, c models.ClientRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.clients {
		if r.clients[i].ID == c.ID {
			r.clients[i] = c
			return nil
		}
	}
	return ErrNotFound
}

// MemoryOrderRepository stores order records in insertion order.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.OrderRecord
}

// NewMemoryOrderRepository creates an empty order store.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// ListAll returns all orders in insertion order.
func (r *MemoryOrderRepository) ListAll(ctx context.Context) ([]models.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.OrderRecord, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// ListByClient returns the orders owned by one client.
func (r *MemoryOrderRepository) ListByClient(ctx context.Context, clientID string) ([]models.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.OrderRecord
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

// GetByID returns the order with the given id.
func (r *MemoryOrderRepository) GetByID(ctx context.Context, id string) (models.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.OrderRecord{}, ErrNotFound
}

// Create appends a new order record.
func (r *MemoryOrderRepository) Create(ctx context.Context, o models.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return nil
}

// Update replaces the record with the same id.
func (r *MemoryOrderRepository) Update(ctx context.Context, o models.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i] = o
			return nil
		}
	}
	return ErrNotFound
}
