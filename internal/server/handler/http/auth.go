package http

import (
	"context"
	"encoding/json"
	"net/http"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	// Login verifies the credentials and returns a signed bearer token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles login requests.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for login. The password
// field name is part of the established wire contract.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"pas_word"`
}

// Login handles login requests. It expects a JSON body with non-empty
// email and password fields and responds with {"token": "..."}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Informe e-mail e senha.")
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
