package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/FinPainel/internal/models"
)

// OrderService defines the order operations required by the HTTP
// handlers.
type OrderService interface {
	ListAll(ctx context.Context) ([]models.OrderRecord, error)
	ListByClient(ctx context.Context, clientID string) ([]models.OrderRecord, error)
	Create(ctx context.Context, in models.OrdemInput) (models.OrderRecord, error)
	TogglePayment(ctx context.Context, id string) (models.OrderRecord, error)
}

// OrderHandler handles order collection requests.
type OrderHandler struct {
	OrderService OrderService
}

// ListAll responds with every order, the financial-summary source.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.OrderService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderPayloads(records))
}

// ListByClient responds with one client's orders.
func (h *OrderHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	records, err := h.OrderService.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderPayloads(records))
}

// Create adds an order from the JSON body.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.OrdemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}
	if err := validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}

	record, err := h.OrderService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record.Payload())
}

// TogglePayment flips the order's paid flag.
func (h *OrderHandler) TogglePayment(w http.ResponseWriter, r *http.Request) {
	record, err := h.OrderService.TogglePayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record.Payload())
}

func orderPayloads(records []models.OrderRecord) []models.OrderPayload {
	out := make([]models.OrderPayload, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Payload())
	}
	return out
}
