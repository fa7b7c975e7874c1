package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/repository"
)

func newOrderFixture(t *testing.T) (*OrderService, *repository.MemoryClientRepository, models.ClientRecord) {
	t.Helper()
	clients := repository.NewMemoryClientRepository()
	orders := repository.NewMemoryOrderRepository()
	client := models.ClientRecord{ID: "c1", Name: "Ana", Email: "ana@example.com", IsActive: true, FinancialStatus: models.Adimplente}
	require.NoError(t, clients.Create(context.Background(), client))

	svc := NewOrderService(orders, clients)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, clients, client
}

func TestOrderServiceCreate(t *testing.T) {
	svc, clients, client := newOrderFixture(t)
	ctx := context.Background()

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.Create(ctx, models.OrdemInput{Description: "x", Value: 1, ClientID: "missing"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unpaid order marks the client delinquent", func(t *testing.T) {
		created, err := svc.Create(ctx, models.OrdemInput{
			Description: "site", Value: 100, StartDate: "2026-01-01", EndDate: "2026-02-01", ClientID: client.ID,
		})
		require.NoError(t, err)
		assert.False(t, created.IsPaid)
		assert.Nil(t, created.PaidAt)

		got, err := clients.GetByID(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Inadimplente, got.FinancialStatus)
	})

	t.Run("paid order carries a payment timestamp", func(t *testing.T) {
		created, err := svc.Create(ctx, models.OrdemInput{
			Description: "manutenção", Value: 50, StartDate: "2026-02-01", EndDate: "2026-03-01",
			IsPaid: true, ClientID: client.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, created.PaidAt)
		assert.Equal(t, time.March, created.PaidAt.Month())
	})
}

func TestOrderServiceTogglePayment(t *testing.T) {
	svc, clients, client := newOrderFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.OrdemInput{
		Description: "site", Value: 100, StartDate: "2026-01-01", EndDate: "2026-02-01", ClientID: client.ID,
	})
	require.NoError(t, err)

	// Paying the only unpaid order restores adimplência.
	toggled, err := svc.TogglePayment(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPaid)
	require.NotNil(t, toggled.PaidAt)

	got, err := clients.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Adimplente, got.FinancialStatus)

	// Unpaying clears the timestamp and flips the client back.
	toggled, err = svc.TogglePayment(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPaid)
	assert.Nil(t, toggled.PaidAt)

	got, err = clients.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Inadimplente, got.FinancialStatus)

	_, err = svc.TogglePayment(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderServiceListByClient(t *testing.T) {
	svc, _, client := newOrderFixture(t)
	ctx := context.Background()

	_, err := svc.ListByClient(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, models.OrdemInput{Description: "a", Value: 1, StartDate: "2026-01-01", EndDate: "2026-01-02", ClientID: client.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.OrdemInput{Description: "b", Value: 2, StartDate: "2026-01-01", EndDate: "2026-01-02", ClientID: client.ID})
	require.NoError(t, err)

	orders, err := svc.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
