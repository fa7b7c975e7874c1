package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/FinPainel/internal/api"
	"github.com/atinyakov/FinPainel/internal/models"
)

// Resumo aggregates the financial dashboard figures. When the orders
// fetch fails, the totals are zero and Erro carries the message to show
// in their place.
type Resumo struct {
	TotalPago        float64
	TotalAPagar      float64
	RecebidoMesAtual float64

	TotalClientes int
	Adimplentes   int
	Inadimplentes int
	// Percentages with one decimal place, e.g. "66.7".
	PercentAdimplente   string
	PercentInadimplente string

	Erro string
}

// Summary computes the financial overview from the full order
// collection and the client list.
type Summary struct {
	apiClient *api.Client
	log       *zap.Logger
}

// NewSummary wires the summary to the API.
func NewSummary(apiClient *api.Client, log *zap.Logger) *Summary {
	return &Summary{apiClient: apiClient, log: log}
}

// Load builds the Resumo for the month containing now. Fetch failures
// degrade to zeroed figures, never an error: the orders failure message
// lands in Erro, a clients failure only logs.
func (s *Summary) Load(ctx context.Context, now time.Time) Resumo {
	var r Resumo

	orders, err := s.apiClient.ListAllOrders(ctx)
	if err != nil {
		s.log.Error("failed to fetch orders for summary", zap.Error(err))
		r.Erro = summaryError(err)
	} else {
		for _, p := range orders {
			o := p.ToOrdem()
			if o.Paga {
				r.TotalPago += o.Valor
			} else {
				r.TotalAPagar += o.Valor
			}
			if o.Paga && o.PagaEm != nil &&
				o.PagaEm.Month() == now.Month() && o.PagaEm.Year() == now.Year() {
				r.RecebidoMesAtual += o.Valor
			}
		}
	}

	clients, err := s.apiClient.ListClients(ctx)
	if err != nil {
		s.log.Error("failed to fetch clients for summary", zap.Error(err))
	}
	r.TotalClientes = len(clients)
	for _, p := range clients {
		if p.ToCliente().StatusFinanceiro == models.Adimplente {
			r.Adimplentes++
		}
	}
	r.Inadimplentes = r.TotalClientes - r.Adimplentes

	if r.TotalClientes > 0 {
		r.PercentAdimplente = fmt.Sprintf("%.1f", float64(r.Adimplentes)/float64(r.TotalClientes)*100)
		r.PercentInadimplente = fmt.Sprintf("%.1f", float64(r.Inadimplentes)/float64(r.TotalClientes)*100)
	} else {
		r.PercentAdimplente = "0.0"
		r.PercentInadimplente = "0.0"
	}

	return r
}

func summaryError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != "request failed" {
		return apiErr.Message
	}
	return "Erro ao buscar dados financeiros."
}
