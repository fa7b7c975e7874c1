package models

import "time"

// Records are the reference backend's stored shapes. The production
// backend is external; these exist so the dashboard can be run and
// tested against cmd/server.

// UserRecord is a stored user account.
type UserRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

// Payload converts the record to its wire shape.
func (r UserRecord) Payload() UserPayload {
	return UserPayload{ID: r.ID, Name: r.Name, Email: r.Email, Role: r.Role, IsActive: r.IsActive}
}

// ClientRecord is a stored client.
type ClientRecord struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	IsActive        bool
	FinancialStatus string
}

// Payload converts the record to its wire shape.
func (r ClientRecord) Payload() ClientPayload {
	return ClientPayload{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		IsActive:        r.IsActive,
		FinancialStatus: r.FinancialStatus,
	}
}

// OrderRecord is a stored order, owned by exactly one client.
type OrderRecord struct {
	ID          string
	Description string
	Value       float64
	StartDate   string
	EndDate     string
	IsPaid      bool
	PaidAt      *time.Time
	ClientID    string
}

// Payload converts the record to its wire shape.
func (r OrderRecord) Payload() OrderPayload {
	p := OrderPayload{
		ID:          r.ID,
		Description: r.Description,
		Value:       &r.Value,
		IsPaid:      &r.IsPaid,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		ClientID:    r.ClientID,
	}
	if r.PaidAt != nil {
		s := r.PaidAt.Format(time.RFC3339)
		p.PaidAt = &s
	}
	return p
}
