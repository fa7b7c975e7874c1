package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/atinyakov/FinPainel/internal/api"
	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/session"
)

// User-visible submission errors. The dashboard shows these strings
// inline next to the triggering form.
var (
	ErrClienteDuplicado = errors.New("Já existe um cliente com este email ou telefone.")
	ErrCriarCliente     = errors.New("Erro ao criar cliente. Tente novamente.")
	ErrEditarCliente    = errors.New("Erro ao editar cliente. Tente novamente.")
	ErrCriarUsuario     = errors.New("Erro ao criar usuário. Tente novamente.")
	ErrEditarUsuario    = errors.New("Erro ao editar usuário. Tente novamente.")
	ErrEmailEmUso       = errors.New("Este e-mail já está em uso por outro usuário ou cliente.")
	ErrValidarEmail     = errors.New("Não foi possível validar e-mail. Tente novamente.")
	ErrSomenteAdmins    = errors.New("Apenas SUPER_ADMIN e ADMIN podem cadastrar administradores.")
)

// defaultDebounce is how long the email field must settle before the
// live duplicate check fires.
const defaultDebounce = 500 * time.Millisecond

// renderFieldError converts a validator error into a short Portuguese
// message for inline display.
func renderFieldError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" é obrigatório")
		case "email":
			msgs = append(msgs, field+" deve ser um e-mail válido")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s deve ser um de: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s é inválido (%s)", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ClienteBuffer is the transient edit buffer of the client dialog.
type ClienteBuffer struct {
	Nome     string `validate:"required"`
	Email    string `validate:"required,email"`
	Telefone string `validate:"required"`
}

// ClienteForm owns the create/edit dialog state for clients.
type ClienteForm struct {
	apiClient *api.Client
	list      *List[models.Cliente]
	validate  *validator.Validate
	log       *zap.Logger

	mu sync.Mutex
	// editing is nil in create mode.
	editing *models.Cliente
	buffer  ClienteBuffer
	// addingOrder is the transient sub-order flag, reset on every
	// OpenEdit.
	addingOrder bool
}

// NewClienteForm wires the client dialog to the API and the list it
// patches after submissions.
func NewClienteForm(apiClient *api.Client, list *List[models.Cliente], log *zap.Logger) *ClienteForm {
	return &ClienteForm{
		apiClient: apiClient,
		list:      list,
		validate:  validator.New(),
		log:       log,
	}
}

// OpenCreate resets the buffer to empty defaults.
func (f *ClienteForm) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = nil
	f.buffer = ClienteBuffer{}
	f.addingOrder = false
}

// OpenEdit seeds the buffer from the selected client.
func (f *ClienteForm) OpenEdit(c models.Cliente) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editing = &c
	f.buffer = ClienteBuffer{Nome: c.Nome, Email: c.Email, Telefone: c.Telefone}
	f.addingOrder = false
}

// SetBuffer replaces the edit buffer.
func (f *ClienteForm) SetBuffer(b ClienteBuffer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buffer = b
}

// Editing returns the client being edited, or nil in create mode.
func (f *ClienteForm) Editing() *models.Cliente {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editing
}

// StartAddOrder marks the dialog as preparing a sub-order.
func (f *ClienteForm) StartAddOrder() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addingOrder = true
}

// AddingOrder reports the transient sub-order flag.
func (f *ClienteForm) AddingOrder() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addingOrder
}

// Submit validates the buffer and submits it. Creation prepends the new
// client to the list; edits discard local state and refetch so that
// server-computed fields stay authoritative. On success the buffer is
// reset.
func (f *ClienteForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	buffer := f.buffer
	editing := f.editing
	f.mu.Unlock()

	if err := f.validate.Struct(buffer); err != nil {
		return renderFieldError(err)
	}

	input := models.ClienteInput{Name: buffer.Nome, Email: buffer.Email, Phone: buffer.Telefone}

	if editing != nil {
		input.IsActive = &editing.Ativo
		if _, err := f.apiClient.UpdateClient(ctx, editing.ID, input); err != nil {
			f.log.Error("failed to update client", zap.String("id", editing.ID), zap.Error(err))
			return ErrEditarCliente
		}
		if err := f.list.Load(ctx); err != nil {
			return ErrEditarCliente
		}
	} else {
		created, err := f.apiClient.CreateClient(ctx, input)
		if err != nil {
			if api.IsConflict(err) {
				return ErrClienteDuplicado
			}
			f.log.Error("failed to create client", zap.Error(err))
			return ErrCriarCliente
		}
		f.list.ApplyCreated(created.ToCliente())
	}

	f.OpenCreate() // reset buffer and close edit mode
	return nil
}

// UsuarioBuffer is the transient edit buffer of the user dialog.
type UsuarioBuffer struct {
	Nome  string `validate:"required"`
	Email string `validate:"required,email"`
	Papel string `validate:"required,oneof=ADMIN USER"`
	Senha string
}

// UsuarioForm owns the create/edit dialog state for users, including
// the debounced duplicate-email check.
type UsuarioForm struct {
	apiClient *api.Client
	list      *List[models.Usuario]
	validate  *validator.Validate
	log       *zap.Logger
	debounce  time.Duration

	mu      sync.Mutex
	editing *models.Usuario
	buffer  UsuarioBuffer

	// live email check state
	cancel    context.CancelFunc
	timer     *time.Timer
	checking  bool
	duplicate bool
}

// NewUsuarioForm wires the user dialog to the API and its list.
func NewUsuarioForm(apiClient *api.Client, list *List[models.Usuario], log *zap.Logger) *UsuarioForm {
	return &UsuarioForm{
		apiClient: apiClient,
		list:      list,
		validate:  validator.New(),
		log:       log,
		debounce:  defaultDebounce,
	}
}

// OpenCreate resets the buffer to empty defaults (role USER).
func (f *UsuarioForm) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelPendingLocked()
	f.editing = nil
	f.buffer = UsuarioBuffer{Papel: models.RoleUser}
	f.duplicate = false
	f.checking = false
}

// OpenEdit seeds the buffer from the selected user.
func (f *UsuarioForm) OpenEdit(u models.Usuario) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelPendingLocked()
	f.editing = &u
	f.buffer = UsuarioBuffer{Nome: u.Nome, Email: u.Email, Papel: u.Papel}
	f.duplicate = false
	f.checking = false
}

// SetBuffer replaces the edit buffer without touching the email check.
func (f *UsuarioForm) SetBuffer(b UsuarioBuffer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buffer = b
}

// SetEmail updates the email field and restarts the debounced duplicate
// check. Each keystroke cancels the pending check's context and stops
// its timer, so a superseded check can neither fire nor apply a stale
// result.
func (f *UsuarioForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.buffer.Email = email
	f.duplicate = false
	f.cancelPendingLocked()

	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		f.checking = false
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.checking = true
	f.timer = time.AfterFunc(f.debounce, func() {
		f.runEmailCheck(ctx, trimmed)
	})
}

// cancelPendingLocked stops the in-flight check. Caller holds the lock.
func (f *UsuarioForm) cancelPendingLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *UsuarioForm) runEmailCheck(ctx context.Context, email string) {
	if ctx.Err() != nil {
		return
	}

	editingID := ""
	f.mu.Lock()
	if f.editing != nil {
		editingID = f.editing.ID
	}
	f.mu.Unlock()

	dup, err := f.emailInUse(ctx, email, editingID)

	f.mu.Lock()
	defer f.mu.Unlock()
	// The token is checked again before the result is applied: a check
	// superseded mid-flight must not overwrite state for an email the
	// user has since changed.
	if ctx.Err() != nil {
		return
	}
	f.checking = false
	if err != nil {
		f.log.Warn("live email check failed", zap.Error(err))
		f.duplicate = false
		return
	}
	f.duplicate = dup
}

// EmailStatus reports the live check state: whether a check is pending
// and whether the last completed check found a duplicate.
func (f *UsuarioForm) EmailStatus() (checking, duplicate bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checking, f.duplicate
}

// emailInUse fetches all users and all clients concurrently and reports
// whether the candidate email belongs to any user other than editingID
// or to any client. Both fetches must succeed.
func (f *UsuarioForm) emailInUse(ctx context.Context, email, editingID string) (bool, error) {
	var (
		users   []models.UserPayload
		clients []models.ClientPayload
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = f.apiClient.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = f.apiClient.ListClients(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, u := range users {
		if strings.ToLower(u.Email) == email && u.ID != editingID {
			return true, nil
		}
	}
	for _, c := range clients {
		if strings.ToLower(c.Email) == email {
			return true, nil
		}
	}
	return false, nil
}

// Submit validates the buffer, runs the duplicate-email check (fail
// closed: a failed validation fetch blocks the submission), and then
// creates or updates the user. Creation prepends to the list; edits
// refetch the whole collection.
func (f *UsuarioForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	buffer := f.buffer
	editing := f.editing
	f.cancelPendingLocked()
	f.checking = false
	f.mu.Unlock()

	if err := f.validate.Struct(buffer); err != nil {
		return renderFieldError(err)
	}

	email := strings.ToLower(strings.TrimSpace(buffer.Email))
	editingID := ""
	if editing != nil {
		editingID = editing.ID
	}
	dup, err := f.emailInUse(ctx, email, editingID)
	if err != nil {
		f.log.Error("email validation fetch failed", zap.Error(err))
		return ErrValidarEmail
	}
	if dup {
		return ErrEmailEmUso
	}

	input := models.UsuarioInput{
		Name:     buffer.Nome,
		Email:    buffer.Email,
		Role:     buffer.Papel,
		Password: buffer.Senha,
	}

	if editing != nil {
		if _, err := f.apiClient.UpdateUser(ctx, editing.ID, input); err != nil {
			f.log.Error("failed to update user", zap.String("id", editing.ID), zap.Error(err))
			return ErrEditarUsuario
		}
		if err := f.list.Load(ctx); err != nil {
			return ErrEditarUsuario
		}
	} else {
		created, err := f.apiClient.CreateUser(ctx, input)
		if err != nil {
			f.log.Error("failed to create user", zap.Error(err))
			return ErrCriarUsuario
		}
		f.list.ApplyCreated(created.ToUsuario())
	}

	f.OpenCreate()
	return nil
}

// AdminForm registers new administrators, an affordance gated to
// SUPER_ADMIN and ADMIN sessions.
type AdminForm struct {
	apiClient *api.Client
	sess      session.Store
	validate  *validator.Validate
	log       *zap.Logger
}

// AdminBuffer is the admin registration buffer.
type AdminBuffer struct {
	Nome  string `validate:"required"`
	Email string `validate:"required,email"`
	Senha string `validate:"required"`
}

// NewAdminForm wires admin registration to the API and the session whose
// role gates it.
func NewAdminForm(apiClient *api.Client, sess session.Store, log *zap.Logger) *AdminForm {
	return &AdminForm{apiClient: apiClient, sess: sess, validate: validator.New(), log: log}
}

// Submit registers a new ADMIN user.
func (f *AdminForm) Submit(ctx context.Context, b AdminBuffer) error {
	role := f.sess.Role()
	if role != models.RoleSuperAdmin && role != models.RoleAdmin {
		return ErrSomenteAdmins
	}
	if err := f.validate.Struct(b); err != nil {
		return renderFieldError(err)
	}

	input := models.UsuarioInput{
		Name:     b.Nome,
		Email:    b.Email,
		Password: b.Senha,
		Role:     models.RoleAdmin,
	}
	if _, err := f.apiClient.CreateUser(ctx, input); err != nil {
		if api.IsConflict(err) {
			return ErrEmailEmUso
		}
		f.log.Error("failed to register admin", zap.Error(err))
		return ErrCriarUsuario
	}
	return nil
}
