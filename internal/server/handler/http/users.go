package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/FinPainel/internal/models"
)

// UserService defines the user operations required by the HTTP
// handlers.
type UserService interface {
	List(ctx context.Context) ([]models.UserRecord, error)
	Create(ctx context.Context, in models.UsuarioInput) (models.UserRecord, error)
	Update(ctx context.Context, id string, in models.UsuarioInput) (models.UserRecord, error)
	ToggleStatus(ctx context.Context, id string) (models.UserRecord, error)
}

// UserHandler handles user collection requests.
type UserHandler struct {
	UserService UserService
}

// ListAll responds with every user in insertion order.
func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]models.UserPayload, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Payload())
	}
	writeJSON(w, http.StatusOK, out)
}

// Create adds a user from the JSON body. The password is required here
// even though the input type allows omitting it on update.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.UsuarioInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}
	if err := validate.Struct(in); err != nil || in.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}

	record, err := h.UserService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record.Payload())
}

// Update patches the user named by the id path parameter.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.UsuarioInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}
	if err := validate.Struct(in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}

	record, err := h.UserService.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record.Payload())
}

// ToggleStatus flips the user's active flag.
func (h *UserHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	record, err := h.UserService.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record.Payload())
}
