// Package session holds the bearer credential and the role derived from
// it, persisted across runs of the dashboard.
package session

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// Store is the session contract consumers receive by injection: the
// current credential pair, a setter that derives the role, and teardown.
type Store interface {
	// Token returns the bearer token, or "" when logged out.
	Token() string
	// Role returns the normalized role, or "" when unknown.
	Role() string
	// Email returns the signed-in account's email, or "" when unknown.
	Email() string
	// Set stores the token and the role and email decoded from it.
	Set(token string) error
	// Clear removes all fields (logout).
	Clear() error
}

type state struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// FileStore persists the session as a small JSON file so the credential
// survives dashboard restarts.
type FileStore struct {
	path string

	mu sync.Mutex
	st state
}

// NewFileStore loads the session from path. A missing file is an empty
// session, not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&s.st); err != nil {
		return nil, err
	}
	return s, nil
}

// Token implements Store.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Token
}

// Role implements Store.
func (s *FileStore) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Role
}

// Email implements Store.
func (s *FileStore) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Email
}

// Set stores the token and the role and email extracted from its
// payload. A token whose payload cannot be decoded still logs the user
// in, with empty derived fields; decoding problems are never surfaced
// as errors.
func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{Token: token, Role: RoleFromToken(token), Email: EmailFromToken(token)}
	return s.save()
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = state{}
	return s.save()
}

func (s *FileStore) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&s.st)
}

// RoleFromToken decodes the token's middle segment as base64url JSON and
// extracts the role candidate, in priority order: "role", "roles" (first
// element when an array), "papel", "user.role". Every failure mode —
// missing segment, bad base64, bad JSON, absent or non-string candidate —
// yields "", never an error.
func RoleFromToken(token string) string {
	claims, ok := claimsFromToken(token)
	if !ok {
		return ""
	}

	candidates := []any{claims["role"], claims["roles"], claims["papel"]}
	if user, ok := claims["user"].(map[string]any); ok {
		candidates = append(candidates, user["role"])
	}
	for _, c := range candidates {
		if role := candidateString(c); role != "" {
			return NormalizeRole(role)
		}
	}
	return ""
}

// EmailFromToken extracts the account email from the token payload,
// trying "email", then "sub", then "user.email". Same failure contract
// as RoleFromToken.
func EmailFromToken(token string) string {
	claims, ok := claimsFromToken(token)
	if !ok {
		return ""
	}

	candidates := []any{claims["email"], claims["sub"]}
	if user, ok := claims["user"].(map[string]any); ok {
		candidates = append(candidates, user["email"])
	}
	for _, c := range candidates {
		if email := candidateString(c); email != "" {
			return email
		}
	}
	return ""
}

// claimsFromToken decodes the token's middle segment. The second return
// is false for every malformation.
func claimsFromToken(token string) (map[string]any, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, false
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, false
	}

	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}
	return claims, true
}

func decodeSegment(seg string) ([]byte, error) {
	seg = strings.TrimRight(seg, "=")
	if b, err := base64.RawURLEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(seg)
}

func candidateString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// NormalizeRole trims, uppercases, and replaces every rune outside
// [A-Z0-9_] with an underscore.
func NormalizeRole(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, upper)
}
