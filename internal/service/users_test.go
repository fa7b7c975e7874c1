package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/repository"
)

func TestUserServiceCreate(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	clients := repository.NewMemoryClientRepository()
	svc := NewUserService(users, clients)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.UsuarioInput{
		Name: "Novo", Email: "novo@example.com", Password: "secret1", Role: models.RoleUser,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))

	t.Run("duplicate email across users", func(t *testing.T) {
		_, err := svc.Create(ctx, models.UsuarioInput{Name: "X", Email: "NOVO@example.com", Password: "p", Role: models.RoleUser})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("duplicate email against a client", func(t *testing.T) {
		require.NoError(t, clients.Create(ctx, models.ClientRecord{ID: "c1", Email: "cliente@example.com"}))
		_, err := svc.Create(ctx, models.UsuarioInput{Name: "X", Email: "cliente@example.com", Password: "p", Role: models.RoleUser})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	clients := repository.NewMemoryClientRepository()
	svc := NewUserService(users, clients)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.UsuarioInput{
		Name: "Novo", Email: "novo@example.com", Password: "secret1", Role: models.RoleUser,
	})
	require.NoError(t, err)

	t.Run("blank password keeps the current hash", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, models.UsuarioInput{
			Name: "Renomeado", Email: "novo@example.com", Role: models.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renomeado", updated.Name)
		assert.Equal(t, models.RoleAdmin, updated.Role)
		assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, models.UsuarioInput{
			Name: "Renomeado", Email: "novo@example.com", Role: models.RoleAdmin, Password: "other-secret",
		})
		require.NoError(t, err)
		assert.NotEqual(t, created.PasswordHash, updated.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("other-secret")))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", models.UsuarioInput{Name: "X", Email: "x@example.com", Role: models.RoleUser})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserServiceToggleStatus(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := NewUserService(users, repository.NewMemoryClientRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, models.UsuarioInput{
		Name: "Novo", Email: "novo@example.com", Password: "p", Role: models.RoleUser,
	})
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = svc.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}
