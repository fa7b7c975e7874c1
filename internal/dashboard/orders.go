package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/FinPainel/internal/api"
	"github.com/atinyakov/FinPainel/internal/models"
)

// Order form errors.
var (
	ErrOrdemCamposObrigatorios = errors.New("Todos os campos são obrigatórios.")
	ErrOrdemDataInvalida       = errors.New("Data inválida. Use o formato dd/mm/aaaa.")
)

// OrdemBuffer is the add-order dialog buffer. Dates are entered in the
// Brazilian dd/mm/aaaa format and converted to ISO on submission.
type OrdemBuffer struct {
	Descricao string
	Valor     float64
	Inicio    string
	Fim       string
	Paga      bool
}

// Ordens loads and mutates the per-client order snapshots.
type Ordens struct {
	apiClient *api.Client
	log       *zap.Logger
}

// NewOrdens wires the order operations to the API.
func NewOrdens(apiClient *api.Client, log *zap.Logger) *Ordens {
	return &Ordens{apiClient: apiClient, log: log}
}

// DoCliente fetches the transient order snapshot of one client.
func (o *Ordens) DoCliente(ctx context.Context, clientID string) ([]models.Ordem, error) {
	payloads, err := o.apiClient.ListClientOrders(ctx, clientID)
	if err != nil {
		o.log.Error("failed to fetch client orders", zap.String("client_id", clientID), zap.Error(err))
		return nil, err
	}
	ordens := make([]models.Ordem, 0, len(payloads))
	for _, p := range payloads {
		ordens = append(ordens, p.ToOrdem())
	}
	return ordens, nil
}

// Criar validates the buffer and creates an order for the client. All
// fields are required and dates must parse; both block before any
// network call.
func (o *Ordens) Criar(ctx context.Context, clientID string, b OrdemBuffer) (models.Ordem, error) {
	if b.Descricao == "" || b.Valor == 0 || b.Inicio == "" || b.Fim == "" || clientID == "" {
		return models.Ordem{}, ErrOrdemCamposObrigatorios
	}

	inicio, err := brazilianDateToISO(b.Inicio)
	if err != nil {
		return models.Ordem{}, ErrOrdemDataInvalida
	}
	fim, err := brazilianDateToISO(b.Fim)
	if err != nil {
		return models.Ordem{}, ErrOrdemDataInvalida
	}

	created, err := o.apiClient.CreateOrder(ctx, models.OrdemInput{
		Description: b.Descricao,
		Value:       b.Valor,
		StartDate:   inicio,
		EndDate:     fim,
		IsPaid:      b.Paga,
		ClientID:    clientID,
	})
	if err != nil {
		o.log.Error("failed to create order", zap.String("client_id", clientID), zap.Error(err))
		return models.Ordem{}, err
	}
	return created.ToOrdem(), nil
}

// TogglePagamento flips one order's paid flag and returns the updated
// order.
func (o *Ordens) TogglePagamento(ctx context.Context, orderID string) (models.Ordem, error) {
	updated, err := o.apiClient.ToggleOrderPayment(ctx, orderID)
	if err != nil {
		o.log.Error("failed to toggle order payment", zap.String("order_id", orderID), zap.Error(err))
		return models.Ordem{}, err
	}
	return updated.ToOrdem(), nil
}

// brazilianDateToISO converts dd/mm/aaaa to aaaa-mm-dd.
func brazilianDateToISO(date string) (string, error) {
	t, err := time.Parse("02/01/2006", date)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// ISODateToBrazilian converts aaaa-mm-dd to dd/mm/aaaa for display.
func ISODateToBrazilian(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
