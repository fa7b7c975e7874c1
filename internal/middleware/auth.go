// Package middleware provides HTTP middleware for the reference
// backend: bearer-token authentication and request logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	ctxKeySubject ctxKey = "subject"
	ctxKeyEmail   ctxKey = "email"
	ctxKeyRole    ctxKey = "role"
)

// BearerAuth validates the Authorization header's bearer token as an
// HS256 JWT signed with secret and injects its sub, email, and role
// claims into the request context. Requests without a valid token get
// a 401 with a JSON message body.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Token de acesso ausente.")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				unauthorized(w, "Cabeçalho de autorização inválido.")
				return
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				unauthorized(w, "Token de acesso inválido ou expirado.")
				return
			}

			ctx := r.Context()
			if sub, ok := claims["sub"].(string); ok {
				ctx = context.WithValue(ctx, ctxKeySubject, sub)
			}
			if email, ok := claims["email"].(string); ok {
				ctx = context.WithValue(ctx, ctxKeyEmail, email)
			}
			if role, ok := claims["role"].(string); ok {
				ctx = context.WithValue(ctx, ctxKeyRole, role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the authenticated account id, if any.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeySubject).(string)
	return s
}

// EmailFromContext returns the authenticated account email, if any.
func EmailFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeyEmail).(string)
	return s
}

// RoleFromContext returns the authenticated account role, if any.
func RoleFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeyRole).(string)
	return s
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
