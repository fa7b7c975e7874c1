// Package main runs the FinPainel dashboard as an interactive shell:
// login, client and user management, per-client orders, and the
// financial summary, all backed by the REST API.
package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/FinPainel/internal/api"
	"github.com/atinyakov/FinPainel/internal/config"
	"github.com/atinyakov/FinPainel/internal/dashboard"
	"github.com/atinyakov/FinPainel/internal/logger"
	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/session"
)

var (
	version   string
	buildDate string
)

// shell bundles the controllers behind the interactive commands.
type shell struct {
	scanner *bufio.Scanner
	sess    session.Store
	api     *api.Client

	clientes    *dashboard.List[models.Cliente]
	usuarios    *dashboard.List[models.Usuario]
	clienteForm *dashboard.ClienteForm
	usuarioForm *dashboard.UsuarioForm
	adminForm   *dashboard.AdminForm
	ordens      *dashboard.Ordens
	summary     *dashboard.Summary
}

// repl runs the interactive loop, dispatching dashboard commands.
func (s *shell) repl(ctx context.Context) {
	for {
		fmt.Print("finpainel> ")
		if !s.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(s.scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login, logout, whoami, clients, client-search <term>, client-create, client-edit <id>, client-toggle <id>, client-toggle-financial <id>, users, user-create, user-edit <id>, user-toggle <id>, admin-create, orders <clientID>, order-add <clientID>, order-pay <orderID>, summary, exit")
		case "login":
			s.login(ctx)
		case "logout":
			if err := s.sess.Clear(); err != nil {
				fmt.Println("Failed to clear session:", err)
			} else {
				fmt.Println("Logged out")
			}
		case "whoami":
			if s.sess.Token() == "" {
				fmt.Println("Not logged in")
			} else {
				fmt.Printf("%s (%s)\n", s.sess.Email(), cmp.Or(s.sess.Role(), "unknown role"))
			}
		case "clients":
			if err := s.clientes.Load(ctx); err != nil {
				fmt.Println("Failed to load clients:", err)
				continue
			}
			s.printClientes()
		case "client-search":
			term := strings.Join(args[1:], " ")
			if err := s.clientes.Search(ctx, term); err != nil {
				fmt.Println("Search failed:", err)
				continue
			}
			s.printClientes()
		case "client-create":
			s.clienteForm.OpenCreate()
			s.clienteForm.SetBuffer(s.promptCliente())
			if err := s.clienteForm.Submit(ctx); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("Client created")
			}
		case "client-edit":
			if len(args) < 2 {
				fmt.Println("Usage: client-edit <id>")
				continue
			}
			s.editCliente(ctx, args[1])
		case "client-toggle":
			if len(args) < 2 {
				fmt.Println("Usage: client-toggle <id>")
				continue
			}
			if err := s.clientes.ToggleStatus(ctx, args[1]); err != nil {
				fmt.Println(err)
			} else {
				s.printClientes()
			}
		case "client-toggle-financial":
			if len(args) < 2 {
				fmt.Println("Usage: client-toggle-financial <id>")
				continue
			}
			if _, err := s.clientes.ToggleFinancial(ctx, args[1]); err != nil {
				fmt.Println(err)
			} else {
				s.printClientes()
			}
		case "users":
			if err := s.usuarios.Load(ctx); err != nil {
				fmt.Println("Failed to load users:", err)
				continue
			}
			s.printUsuarios()
		case "user-create":
			s.usuarioForm.OpenCreate()
			s.usuarioForm.SetBuffer(s.promptUsuario())
			if err := s.usuarioForm.Submit(ctx); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("User created")
			}
		case "user-edit":
			if len(args) < 2 {
				fmt.Println("Usage: user-edit <id>")
				continue
			}
			s.editUsuario(ctx, args[1])
		case "user-toggle":
			if len(args) < 2 {
				fmt.Println("Usage: user-toggle <id>")
				continue
			}
			if err := s.usuarios.ToggleStatus(ctx, args[1]); err != nil {
				fmt.Println(err)
			} else {
				s.printUsuarios()
			}
		case "admin-create":
			b := dashboard.AdminBuffer{
				Nome:  s.prompt("Name: "),
				Email: s.prompt("Email: "),
				Senha: s.prompt("Password: "),
			}
			if err := s.adminForm.Submit(ctx, b); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("Administrator registered")
			}
		case "orders":
			if len(args) < 2 {
				fmt.Println("Usage: orders <clientID>")
				continue
			}
			ordens, err := s.ordens.DoCliente(ctx, args[1])
			if err != nil {
				fmt.Println("Failed to load orders:", err)
				continue
			}
			s.printOrdens(ordens)
		case "order-add":
			if len(args) < 2 {
				fmt.Println("Usage: order-add <clientID>")
				continue
			}
			s.addOrdem(ctx, args[1])
		case "order-pay":
			if len(args) < 2 {
				fmt.Println("Usage: order-pay <orderID>")
				continue
			}
			updated, err := s.ordens.TogglePagamento(ctx, args[1])
			if err != nil {
				fmt.Println(err)
			} else {
				s.printOrdens([]models.Ordem{updated})
			}
		case "summary":
			s.printResumo(s.summary.Load(ctx, time.Now()))
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (s *shell) prompt(label string) string {
	fmt.Print(label)
	s.scanner.Scan()
	return strings.TrimSpace(s.scanner.Text())
}

func (s *shell) login(ctx context.Context) {
	email := s.prompt("Email: ")
	password := s.prompt("Password: ")
	if err := s.api.Login(ctx, email, password); err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	fmt.Printf("Logged in as %s (%s)\n", s.sess.Email(), cmp.Or(s.sess.Role(), "unknown role"))
}

func (s *shell) promptCliente() dashboard.ClienteBuffer {
	return dashboard.ClienteBuffer{
		Nome:     s.prompt("Name: "),
		Email:    s.prompt("Email: "),
		Telefone: s.prompt("Phone: "),
	}
}

func (s *shell) editCliente(ctx context.Context, id string) {
	for _, c := range s.clientes.Items() {
		if c.ID == id {
			s.clienteForm.OpenEdit(c)
			s.clienteForm.SetBuffer(s.promptCliente())
			if err := s.clienteForm.Submit(ctx); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("Client updated")
			}
			return
		}
	}
	fmt.Println("Client not found; run 'clients' first")
}

func (s *shell) promptUsuario() dashboard.UsuarioBuffer {
	b := dashboard.UsuarioBuffer{
		Nome:  s.prompt("Name: "),
		Papel: strings.ToUpper(s.prompt("Role (ADMIN/USER): ")),
		Senha: s.prompt("Password: "),
	}
	// The email goes through SetEmail so the duplicate check runs with
	// its debounce semantics.
	email := s.prompt("Email: ")
	s.usuarioForm.SetEmail(email)
	b.Email = email
	return b
}

func (s *shell) editUsuario(ctx context.Context, id string) {
	for _, u := range s.usuarios.Items() {
		if u.ID == id {
			s.usuarioForm.OpenEdit(u)
			s.usuarioForm.SetBuffer(s.promptUsuario())
			if err := s.usuarioForm.Submit(ctx); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("User updated")
			}
			return
		}
	}
	fmt.Println("User not found; run 'users' first")
}

func (s *shell) addOrdem(ctx context.Context, clientID string) {
	valor, err := strconv.ParseFloat(s.prompt("Value: "), 64)
	if err != nil {
		fmt.Println("Invalid value")
		return
	}
	b := dashboard.OrdemBuffer{
		Descricao: s.prompt("Description: "),
		Valor:     valor,
		Inicio:    s.prompt("Start date (dd/mm/aaaa): "),
		Fim:       s.prompt("End date (dd/mm/aaaa): "),
		Paga:      strings.EqualFold(s.prompt("Paid? (y/n): "), "y"),
	}
	created, err := s.ordens.Criar(ctx, clientID, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	s.printOrdens([]models.Ordem{created})
}

func (s *shell) printClientes() {
	for _, c := range s.clientes.Items() {
		fmt.Printf("%s  %-25s %-30s %-15s active=%-5t %s\n",
			c.ID, c.Nome, c.Email, c.Telefone, c.Ativo, c.StatusFinanceiro)
	}
}

func (s *shell) printUsuarios() {
	for _, u := range s.usuarios.Items() {
		fmt.Printf("%s  %-25s %-30s %-11s active=%t\n", u.ID, u.Nome, u.Email, u.Papel, u.Ativo)
	}
}

func (s *shell) printOrdens(ordens []models.Ordem) {
	for _, o := range ordens {
		fmt.Printf("%s  %-30s R$ %.2f  %s → %s  paid=%t\n",
			o.ID, o.Descricao, o.Valor,
			dashboard.ISODateToBrazilian(o.Inicio), dashboard.ISODateToBrazilian(o.Fim), o.Paga)
	}
}

func (s *shell) printResumo(r dashboard.Resumo) {
	if r.Erro != "" {
		fmt.Println(r.Erro)
	}
	fmt.Printf("Total pago:          R$ %.2f\n", r.TotalPago)
	fmt.Printf("Total a pagar:       R$ %.2f\n", r.TotalAPagar)
	fmt.Printf("Recebido no mês:     R$ %.2f\n", r.RecebidoMesAtual)
	fmt.Printf("Clientes:            %d\n", r.TotalClientes)
	fmt.Printf("Adimplentes:         %d (%s%%)\n", r.Adimplentes, r.PercentAdimplente)
	fmt.Printf("Inadimplentes:       %d (%s%%)\n", r.Inadimplentes, r.PercentInadimplente)
}

func main() {
	showVer := false
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			showVer = true
		}
	}
	if showVer {
		fmt.Printf("FinPainel Dashboard\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	options := config.Parse()

	lg := logger.New()
	defer func() { _ = lg.Log.Sync() }()
	if err := lg.Init(options.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	zapLogger := lg.Log

	sess, err := session.NewFileStore(options.SessionFile)
	if err != nil {
		zapLogger.Fatal("failed to open session store", zap.Error(err))
	}

	apiClient := api.New(options.BaseURL, options.FallbackBaseURL, sess, zapLogger)

	clientes := dashboard.NewClienteList(apiClient, zapLogger)
	usuarios := dashboard.NewUsuarioList(apiClient, sess, zapLogger)

	s := &shell{
		scanner:     bufio.NewScanner(os.Stdin),
		sess:        sess,
		api:         apiClient,
		clientes:    clientes,
		usuarios:    usuarios,
		clienteForm: dashboard.NewClienteForm(apiClient, clientes, zapLogger),
		usuarioForm: dashboard.NewUsuarioForm(apiClient, usuarios, zapLogger),
		adminForm:   dashboard.NewAdminForm(apiClient, sess, zapLogger),
		ordens:      dashboard.NewOrdens(apiClient, zapLogger),
		summary:     dashboard.NewSummary(apiClient, zapLogger),
	}
	s.repl(context.Background())
}
