package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atinyakov/FinPainel/internal/models"
)

var validate = validator.New()

// ClientService defines the client operations required by the HTTP
// handlers.
type ClientService interface {
	List(ctx context.Context) ([]models.ClientRecord, error)
	Create(ctx context.Context, in models.ClienteInput) (models.ClientRecord, error)
	Update(ctx context.Context, id string, in models.ClienteInput) (models.ClientRecord, error)
	ToggleStatus(ctx context.Context, id string) (models.ClientRecord, error)
	ToggleFinancialStatus(ctx context.Context, id string) (models.ClientRecord, error)
}

// ClientHandler handles client collection requests.
type ClientHandler struct {
	ClientService ClientService
}

// ListAll responds with every client in insertion order.
func (h *ClientHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.ClientService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]models.ClientPayload, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Payload())
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a client from the JSON body.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ClienteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}
	if err := validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}

	record, err := h.ClientService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record.Payload())
}

// Update patches the client named by the id path parameter.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.ClienteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}
	if err := validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}

	record, err := h.ClientService.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record.Payload())
}

// ToggleStatus flips the client's active flag.
func (h *ClientHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	record, err := h.ClientService.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record.Payload())
}

// ToggleFinancialStatus flips the client between ADIMPLENTE and
// INADIMPLENTE.
func (h *ClientHandler) ToggleFinancialStatus(w http.ResponseWriter, r *http.Request) {
	record, err := h.ClientService.ToggleFinancialStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record.Payload())
}
