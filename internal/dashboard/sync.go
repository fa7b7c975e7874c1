package dashboard

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/FinPainel/internal/api"
	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/session"
)

// NewClienteList builds the client list controller: backend payloads are
// mapped through the wire adapter, status toggles keep the stable
// active-first partition, and the financial toggle re-appends.
func NewClienteList(apiClient *api.Client, log *zap.Logger) *List[models.Cliente] {
	return NewList(ListConfig[models.Cliente]{
		Log: log,
		FetchAll: func(ctx context.Context) ([]models.Cliente, error) {
			payloads, err := apiClient.ListClients(ctx)
			if err != nil {
				return nil, err
			}
			clientes := make([]models.Cliente, 0, len(payloads))
			for _, p := range payloads {
				clientes = append(clientes, p.ToCliente())
			}
			return clientes, nil
		},
		Toggle: apiClient.ToggleClientStatus,
		ToggleFinancial: func(ctx context.Context, id string) (models.Cliente, error) {
			p, err := apiClient.ToggleClientFinancialStatus(ctx, id)
			if err != nil {
				return models.Cliente{}, err
			}
			return p.ToCliente(), nil
		},
		ID:        func(c models.Cliente) string { return c.ID },
		Name:      func(c models.Cliente) string { return c.Nome },
		Active:    func(c models.Cliente) bool { return c.Ativo },
		SetActive: func(c *models.Cliente, active bool) { c.Ativo = active },
	})
}

// NewUsuarioList builds the user list controller. The mapped collection
// excludes the signed-in account and anything that is not an ADMIN or
// USER row; SUPER_ADMIN toggles are refused before any backend call.
func NewUsuarioList(apiClient *api.Client, sess session.Store, log *zap.Logger) *List[models.Usuario] {
	return NewList(ListConfig[models.Usuario]{
		Log: log,
		FetchAll: func(ctx context.Context) ([]models.Usuario, error) {
			payloads, err := apiClient.ListUsers(ctx)
			if err != nil {
				return nil, err
			}
			own := strings.ToLower(sess.Email())
			usuarios := make([]models.Usuario, 0, len(payloads))
			for _, p := range payloads {
				if p.Role != models.RoleAdmin && p.Role != models.RoleUser {
					continue
				}
				if own != "" && strings.ToLower(p.Email) == own {
					continue
				}
				usuarios = append(usuarios, p.ToUsuario())
			}
			return usuarios, nil
		},
		Toggle:    apiClient.ToggleUserStatus,
		ID:        func(u models.Usuario) string { return u.ID },
		Name:      func(u models.Usuario) string { return u.Nome },
		Active:    func(u models.Usuario) bool { return u.Ativo },
		SetActive: func(u *models.Usuario, active bool) { u.Ativo = active },
		GuardToggle: func(u models.Usuario) error {
			if u.Papel == models.RoleSuperAdmin {
				return ErrSuperAdminImmutable
			}
			return nil
		},
	})
}
