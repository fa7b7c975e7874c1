// Package main starts the FinPainel reference backend: an in-memory
// implementation of the API the dashboard talks to, used for local
// development and end-to-end testing.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/FinPainel/internal/config"
	"github.com/atinyakov/FinPainel/internal/logger"
	"github.com/atinyakov/FinPainel/internal/models"
	"github.com/atinyakov/FinPainel/internal/repository"
	"github.com/atinyakov/FinPainel/internal/server/handler/http"
	"github.com/atinyakov/FinPainel/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the in-memory stores.
	userRepo := repository.NewMemoryUserRepository()
	clientRepo := repository.NewMemoryClientRepository()
	orderRepo := repository.NewMemoryOrderRepository()

	// Seed the root account so the dashboard can log in.
	if err := seedSuperAdmin(context.Background(), userRepo, options); err != nil {
		zapLogger.Fatal("failed to seed root account", zap.Error(err))
	}

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, options.JWTSecret, options.TokenTTL)
	clientService := service.NewClientService(clientRepo, userRepo)
	userService := service.NewUserService(userRepo, clientRepo)
	orderService := service.NewOrderService(orderRepo, clientRepo)

	// Create HTTP handlers for each resource.
	authHandler := &http.AuthHandler{AuthService: authService}
	clientHandler := &http.ClientHandler{ClientService: clientService}
	userHandler := &http.UserHandler{UserService: userService}
	orderHandler := &http.OrderHandler{OrderService: orderService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, clientHandler, userHandler, orderHandler, options.JWTSecret, zapLogger)

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := nethttp.ListenAndServe(options.Addr, router); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// seedSuperAdmin creates the SUPER_ADMIN account from configuration
// unless one with that email already exists.
func seedSuperAdmin(ctx context.Context, users *repository.MemoryUserRepository, options *config.Options) error {
	if _, err := users.GetByEmail(ctx, options.SeedAdminEmail); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(options.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return users.Create(ctx, models.UserRecord{
		ID:           uuid.NewString(),
		Name:         "Administrador",
		Email:        options.SeedAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	})
}
