// Package http provides HTTP routing and handlers for the reference
// backend API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/FinPainel/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps the shared service errors onto HTTP statuses
// with the messages the dashboard surfaces.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Credenciais inválidas.")
	case errors.Is(err, service.ErrInactiveUser):
		writeMessage(w, http.StatusUnauthorized, "Usuário desativado.")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Registro não encontrado.")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeMessage(w, http.StatusConflict, "Este e-mail já está em uso por outro usuário ou cliente.")
	case errors.Is(err, service.ErrDuplicateContact):
		writeMessage(w, http.StatusConflict, "Já existe um cliente com este email ou telefone.")
	default:
		writeMessage(w, http.StatusInternalServerError, "Erro interno.")
	}
}
