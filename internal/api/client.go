// Package api is a thin accessor over the backend REST surface. Every
// call is a single attempt carrying the session's bearer token; failures
// surface the backend's message field when one is present.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/session"
)

// Error is a backend-reported failure: a non-2xx response with the
// message the backend attached, or a generic one when it attached none.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the backend "message" field, or a generic text.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

// IsConflict reports whether err is a backend 409 response.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// Client wraps the backend endpoints. The zero value is not usable;
// construct with New.
type Client struct {
	base     string
	fallback string
	http     *http.Client
	session  session.Store
	log      *zap.Logger
}

// New returns a Client rooted at baseURL (including the /api prefix).
// fallbackURL, when non-empty, is a second candidate tried by
// ListAllOrders only. The session store supplies the bearer token.
func New(baseURL, fallbackURL string, sess session.Store, log *zap.Logger) *Client {
	return &Client{
		base:     baseURL,
		fallback: fallbackURL,
		http:     &http.Client{},
		session:  sess,
		log:      log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"pas_word"` // field name owned by the backend
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer token and stores it, along
// with the role decoded from it, in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, c.base+"/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return &Error{Status: http.StatusOK, Message: "Token de acesso não encontrado na resposta."}
	}
	return c.session.Set(token)
}

// ListClients returns the full client collection.
func (c *Client) ListClients(ctx context.Context) ([]models.ClientPayload, error) {
	var out []models.ClientPayload
	err := c.do(ctx, http.MethodGet, c.base+"/clients/list-all", nil, &out)
	return out, err
}

// CreateClient creates a client. A nil IsActive defaults to active.
func (c *Client) CreateClient(ctx context.Context, in models.ClienteInput) (models.ClientPayload, error) {
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	var out models.ClientPayload
	err := c.do(ctx, http.MethodPost, c.base+"/clients/create", in, &out)
	return out, err
}

// UpdateClient patches a client's editable fields.
func (c *Client) UpdateClient(ctx context.Context, id string, in models.ClienteInput) (models.ClientPayload, error) {
	var out models.ClientPayload
	err := c.do(ctx, http.MethodPatch, c.base+"/clients/update/"+id, in, &out)
	return out, err
}

// ToggleClientStatus flips a client's active flag.
func (c *Client) ToggleClientStatus(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, c.base+"/clients/update-status/"+id, nil, nil)
}

// ToggleClientFinancialStatus flips a client's adimplência and returns
// the updated resource.
func (c *Client) ToggleClientFinancialStatus(ctx context.Context, id string) (models.ClientPayload, error) {
	var out models.ClientPayload
	err := c.do(ctx, http.MethodPatch, c.base+"/clients/toggle-financial-status/"+id, nil, &out)
	return out, err
}

// ListUsers returns the full user collection.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserPayload, error) {
	var out []models.UserPayload
	err := c.do(ctx, http.MethodGet, c.base+"/users/list-all", nil, &out)
	return out, err
}

// CreateUser creates a user. A nil IsActive defaults to active.
func (c *Client) CreateUser(ctx context.Context, in models.UsuarioInput) (models.UserPayload, error) {
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	var out models.UserPayload
	err := c.do(ctx, http.MethodPost, c.base+"/users/create", in, &out)
	return out, err
}

// UpdateUser patches a user's editable fields.
func (c *Client) UpdateUser(ctx context.Context, id string, in models.UsuarioInput) (models.UserPayload, error) {
	var out models.UserPayload
	err := c.do(ctx, http.MethodPatch, c.base+"/users/update/"+id, in, &out)
	return out, err
}

// ToggleUserStatus flips a user's active flag.
func (c *Client) ToggleUserStatus(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, c.base+"/users/update-status/"+id, nil, nil)
}

// ListClientOrders returns the orders of one client.
func (c *Client) ListClientOrders(ctx context.Context, clientID string) ([]models.OrderPayload, error) {
	var out []models.OrderPayload
	err := c.do(ctx, http.MethodGet, c.base+"/orders/client/"+clientID, nil, &out)
	return out, err
}

// CreateOrder creates an order for a client.
func (c *Client) CreateOrder(ctx context.Context, in models.OrdemInput) (models.OrderPayload, error) {
	var out models.OrderPayload
	err := c.do(ctx, http.MethodPost, c.base+"/orders/create", in, &out)
	return out, err
}

// ToggleOrderPayment flips an order's paid flag and returns the updated
// resource.
func (c *Client) ToggleOrderPayment(ctx context.Context, orderID string) (models.OrderPayload, error) {
	var out models.OrderPayload
	err := c.do(ctx, http.MethodPatch, c.base+"/orders/"+orderID+"/toggle-payment", nil, &out)
	return out, err
}

// ListAllOrders fetches the full order collection, the financial-summary
// source. It walks the configured base URL and then the fallback (when
// set), returning the first success or the last error. This is the only
// multi-candidate call in the client; it tolerates base-URL mismatches
// between environments and is not a resilience mechanism.
func (c *Client) ListAllOrders(ctx context.Context) ([]models.OrderPayload, error) {
	bases := []string{c.base}
	if c.fallback != "" {
		bases = append(bases, c.fallback)
	}

	var lastErr error
	for _, base := range bases {
		var out []models.OrderPayload
		if err := c.do(ctx, http.MethodGet, base+"/orders/list-all", nil, &out); err != nil {
			lastErr = err
			continue
		}
		return out, nil
	}
	return nil, lastErr
}

// do executes one request. A token in the session is attached as a
// bearer header; its absence is logged and the request proceeds, leaving
// the authorization decision to the backend.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		c.log.Warn("no token in session, sending unauthenticated request",
			zap.String("method", method), zap.String("url", url))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: backendMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func backendMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return "request failed"
}
