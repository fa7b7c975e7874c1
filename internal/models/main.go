// Package models defines the core data structures exchanged with the
// backend and the Portuguese-named projections the dashboard displays.
package models

import "time"

// Role values a user account can hold.
const (
	// RoleSuperAdmin is the root account role; its active flag is immutable in the UI.
	RoleSuperAdmin = "SUPER_ADMIN"
	// RoleAdmin may manage users and clients.
	RoleAdmin = "ADMIN"
	// RoleUser is a regular staff account.
	RoleUser = "USER"
)

// Financial status values of a client.
const (
	// Adimplente marks a client with no outstanding payments.
	Adimplente = "ADIMPLENTE"
	// Inadimplente marks a delinquent client.
	Inadimplente = "INADIMPLENTE"
)

// Cliente is the dashboard projection of a backend client.
type Cliente struct {
	// ID is the backend identifier.
	ID string
	// Nome is the display name; the local search filter matches on it.
	Nome string
	// Email must be unique across clients and users.
	Email string
	// Telefone is the contact phone.
	Telefone string
	// Ativo mirrors the backend isActive flag.
	Ativo bool
	// StatusFinanceiro is ADIMPLENTE or INADIMPLENTE.
	StatusFinanceiro string
	// Ordens is a transient snapshot of the client's orders,
	// populated on demand.
	Ordens []Ordem
}

// Usuario is the dashboard projection of a backend user.
type Usuario struct {
	ID    string
	Nome  string
	Email string
	// Papel is the user's role (SUPER_ADMIN, ADMIN, USER).
	Papel string
	Ativo bool
}

// Ordem is the dashboard projection of a backend order.
type Ordem struct {
	ID        string
	Descricao string
	Valor     float64
	// Inicio and Fim are ISO dates (yyyy-mm-dd).
	Inicio string
	Fim    string
	Paga   bool
	// PagaEm is the normalized payment/creation timestamp, when the
	// backend reported one in any of its known spellings.
	PagaEm *time.Time
}

// ClienteInput is the payload for client create and update calls.
type ClienteInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// UsuarioInput is the payload for user create and update calls. The
// password is optional on update; a blank value keeps the current one.
type UsuarioInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN USER"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// OrdemInput is the payload for order creation.
type OrdemInput struct {
	Description string  `json:"description" validate:"required"`
	Value       float64 `json:"value" validate:"required,gt=0"`
	// StartDate and EndDate are ISO dates (yyyy-mm-dd).
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	IsPaid    bool   `json:"isPaid"`
	ClientID  string `json:"clientId" validate:"required"`
}
