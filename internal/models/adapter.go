package models

import "time"

// The backend has drifted between field spellings over time. Each payload
// type below lists every spelling the dashboard has seen in the wild, and
// its To* method applies a fixed precedence so the rest of the code only
// ever sees one shape.

// ClientPayload mirrors the backend client resource.
type ClientPayload struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	IsActive        bool   `json:"isActive"`
	FinancialStatus string `json:"financialStatus"`
	Status          string `json:"status"`
}

// ToCliente maps a backend client onto the dashboard projection.
// Financial status precedence: financialStatus, status, ADIMPLENTE.
func (p ClientPayload) ToCliente() Cliente {
	status := p.FinancialStatus
	if status == "" {
		status = p.Status
	}
	if status == "" {
		status = Adimplente
	}
	return Cliente{
		ID:               p.ID,
		Nome:             p.Name,
		Email:            p.Email,
		Telefone:         p.Phone,
		Ativo:            p.IsActive,
		StatusFinanceiro: status,
	}
}

// UserPayload mirrors the backend user resource.
type UserPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// ToUsuario maps a backend user onto the dashboard projection.
func (p UserPayload) ToUsuario() Usuario {
	return Usuario{
		ID:    p.ID,
		Nome:  p.Name,
		Email: p.Email,
		Papel: p.Role,
		Ativo: p.IsActive,
	}
}

// OrderPayload mirrors the backend order resource, including every
// alternate spelling of the paid flag, the value, and the payment date.
type OrderPayload struct {
	ID          string `json:"id"`
	Description string `json:"description"`

	Value  *float64 `json:"value"`
	Amount *float64 `json:"amount"`
	Total  *float64 `json:"total"`
	Price  *float64 `json:"price"`

	IsPaid      *bool `json:"isPaid"`
	IsPaidSnake *bool `json:"is_paid"`
	Paid        *bool `json:"paid"`

	PaidAt         *string `json:"paidAt"`
	PaidAtSnake    *string `json:"paid_at"`
	CreatedAt      *string `json:"createdAt"`
	CreatedAtSnake *string `json:"created_at"`
	Date           *string `json:"date"`

	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	ClientID  string `json:"clientId"`
}

// ToOrdem normalizes a backend order. Precedence tables:
//
//	paid:  isPaid, is_paid, paid            (default false)
//	value: value, amount, total, price      (default 0)
//	date:  paidAt, paid_at, createdAt, created_at, date
func (p OrderPayload) ToOrdem() Ordem {
	return Ordem{
		ID:        p.ID,
		Descricao: p.Description,
		Valor:     firstFloat(p.Value, p.Amount, p.Total, p.Price),
		Inicio:    p.StartDate,
		Fim:       p.EndDate,
		Paga:      firstBool(p.IsPaid, p.IsPaidSnake, p.Paid),
		PagaEm:    firstTime(p.PaidAt, p.PaidAtSnake, p.CreatedAt, p.CreatedAtSnake, p.Date),
	}
}

func firstFloat(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

func firstBool(candidates ...*bool) bool {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return false
}

// firstTime parses the first present candidate. A candidate that is
// present but unparseable wins the precedence and yields nil, so a
// malformed paidAt is not silently replaced by a later createdAt.
func firstTime(candidates ...*string) *time.Time {
	for _, c := range candidates {
		if c == nil || *c == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, *c); err == nil {
				return &t
			}
		}
		return nil
	}
	return nil
}
