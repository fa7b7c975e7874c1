package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FinPainel/internal/api"
	"github.com/atinyakov/FinPainel/internal/dashboard"
	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/repository"
	"github.com/atinyakov/FinPainel/internal/service"
	"github.com/atinyakov/FinPainel/internal/session"
)

const testSecret = "routes-test-secret"

// newTestServer wires the full backend stack with a seeded SUPER_ADMIN
// and returns the running test server.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	userRepo := repository.NewMemoryUserRepository()
	clientRepo := repository.NewMemoryClientRepository()
	orderRepo := repository.NewMemoryOrderRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), models.UserRecord{
		ID:           "root",
		Name:         "Administrador",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}))

	router := NewRouter(
		&AuthHandler{AuthService: service.NewAuthService(userRepo, testSecret, time.Hour)},
		&ClientHandler{ClientService: service.NewClientService(clientRepo, userRepo)},
		&UserHandler{UserService: service.NewUserService(userRepo, clientRepo)},
		&OrderHandler{OrderService: service.NewOrderService(orderRepo, clientRepo)},
		testSecret,
		zap.NewNop(),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// newLoggedInClient logs the seeded admin in through the real API
// client, so the token and derived session fields go through the same
// code paths the dashboard uses.
func newLoggedInClient(t *testing.T, srv *httptest.Server) (*api.Client, *session.FileStore) {
	t.Helper()
	sess, err := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	c := api.New(srv.URL+"/api", "", sess, zap.NewNop())
	require.NoError(t, c.Login(context.Background(), "admin@example.com", "admin123"))
	return c, sess
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	t.Run("success stores token and decoded role", func(t *testing.T) {
		_, sess := newLoggedInClient(t, srv)
		assert.NotEmpty(t, sess.Token())
		assert.Equal(t, models.RoleSuperAdmin, sess.Role())
		assert.Equal(t, "admin@example.com", sess.Email())
	})

	t.Run("bad credentials", func(t *testing.T) {
		sess, err := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
		require.NoError(t, err)
		c := api.New(srv.URL+"/api", "", sess, zap.NewNop())

		err = c.Login(context.Background(), "admin@example.com", "wrong")
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "Credenciais inválidas.", apiErr.Message)
		assert.Empty(t, sess.Token())
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/clients/list-all")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClientLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c, _ := newLoggedInClient(t, srv)
	ctx := context.Background()

	created, err := c.CreateClient(ctx, models.ClienteInput{Name: "Ana", Email: "ana@example.com", Phone: "11999999999"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, models.Adimplente, created.FinancialStatus)

	t.Run("duplicate contact yields 409 with the backend message", func(t *testing.T) {
		_, err := c.CreateClient(ctx, models.ClienteInput{Name: "Outra", Email: "ana@example.com", Phone: "2"})
		require.Error(t, err)
		assert.True(t, api.IsConflict(err))
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Já existe um cliente com este email ou telefone.", apiErr.Message)
	})

	t.Run("update and toggles", func(t *testing.T) {
		updated, err := c.UpdateClient(ctx, created.ID, models.ClienteInput{Name: "Ana Maria", Email: "ana@example.com", Phone: "11999999999"})
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", updated.Name)

		require.NoError(t, c.ToggleClientStatus(ctx, created.ID))
		list, err := c.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.False(t, list[0].IsActive)

		fin, err := c.ToggleClientFinancialStatus(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Inadimplente, fin.FinancialStatus)
	})
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c, _ := newLoggedInClient(t, srv)
	ctx := context.Background()

	created, err := c.CreateUser(ctx, models.UsuarioInput{
		Name: "Operador", Email: "op@example.com", Password: "secret1", Role: models.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)

	t.Run("duplicate email yields 409", func(t *testing.T) {
		_, err := c.CreateUser(ctx, models.UsuarioInput{
			Name: "Clone", Email: "OP@example.com", Password: "secret1", Role: models.RoleUser,
		})
		require.Error(t, err)
		assert.True(t, api.IsConflict(err))
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Este e-mail já está em uso por outro usuário ou cliente.", apiErr.Message)
	})

	t.Run("toggle status", func(t *testing.T) {
		require.NoError(t, c.ToggleUserStatus(ctx, created.ID))
		list, err := c.ListUsers(ctx)
		require.NoError(t, err)
		for _, u := range list {
			if u.ID == created.ID {
				assert.False(t, u.IsActive)
			}
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := c.CreateUser(ctx, models.UsuarioInput{
			Name: "Fraco", Email: "fraco@example.com", Password: "123", Role: models.RoleUser,
		})
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	})
}

func TestOrderLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c, _ := newLoggedInClient(t, srv)
	ctx := context.Background()

	client, err := c.CreateClient(ctx, models.ClienteInput{Name: "Ana", Email: "ana@example.com", Phone: "1"})
	require.NoError(t, err)

	order, err := c.CreateOrder(ctx, models.OrdemInput{
		Description: "site", Value: 1500, StartDate: "2026-01-01", EndDate: "2026-03-01", ClientID: client.ID,
	})
	require.NoError(t, err)

	// An unpaid order flips the owning client to INADIMPLENTE.
	clients, err := c.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, models.Inadimplente, clients[0].FinancialStatus)

	paid, err := c.ToggleOrderPayment(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, paid.IsPaid)
	assert.True(t, *paid.IsPaid)
	assert.NotNil(t, paid.PaidAt)

	clients, err = c.ListClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Adimplente, clients[0].FinancialStatus)

	byClient, err := c.ListClientOrders(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	all, err := c.ListAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	t.Run("order for unknown client", func(t *testing.T) {
		_, err := c.CreateOrder(ctx, models.OrdemInput{
			Description: "x", Value: 1, StartDate: "2026-01-01", EndDate: "2026-01-02", ClientID: "missing",
		})
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

// TestDashboardEndToEnd drives the list controller and financial summary
// against the full backend stack.
func TestDashboardEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	c, sess := newLoggedInClient(t, srv)
	ctx := context.Background()

	for _, in := range []models.ClienteInput{
		{Name: "Ana", Email: "ana@example.com", Phone: "1"},
		{Name: "Bruno", Email: "bruno@example.com", Phone: "2"},
	} {
		_, err := c.CreateClient(ctx, in)
		require.NoError(t, err)
	}

	clientes := dashboard.NewClienteList(c, zap.NewNop())
	require.NoError(t, clientes.Load(ctx))
	items := clientes.Items()
	require.Len(t, items, 2)

	// Deactivate Ana: she moves behind Bruno.
	require.NoError(t, clientes.ToggleStatus(ctx, items[0].ID))
	reordered := clientes.Items()
	assert.Equal(t, "Bruno", reordered[0].Nome)
	assert.False(t, reordered[1].Ativo)

	// The user list hides the signed-in account.
	_, err := c.CreateUser(ctx, models.UsuarioInput{
		Name: "Operador", Email: "op@example.com", Password: "secret1", Role: models.RoleUser,
	})
	require.NoError(t, err)
	usuarios := dashboard.NewUsuarioList(c, sess, zap.NewNop())
	require.NoError(t, usuarios.Load(ctx))
	users := usuarios.Items()
	require.Len(t, users, 1)
	assert.Equal(t, "Operador", users[0].Nome)

	// Summary over one unpaid order.
	_, err = c.CreateOrder(ctx, models.OrdemInput{
		Description: "site", Value: 300, StartDate: "2026-01-01", EndDate: "2026-02-01", ClientID: reordered[0].ID,
	})
	require.NoError(t, err)

	resumo := dashboard.NewSummary(c, zap.NewNop()).Load(ctx, time.Now())
	assert.Empty(t, resumo.Erro)
	assert.Equal(t, 300.0, resumo.TotalAPagar)
	assert.Equal(t, 2, resumo.TotalClientes)
	assert.Equal(t, 1, resumo.Inadimplentes)
}
