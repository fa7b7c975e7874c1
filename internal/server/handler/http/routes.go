package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/atinyakov/FinPainel/internal/metrics"
	"github.com/atinyakov/FinPainel/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the reference backend
// API. Login is public; every other /api route requires a bearer token.
//
// Routes:
//
//	POST  /api/auth/login
//	GET   /api/clients/list-all
//	POST  /api/clients/create
//	PATCH /api/clients/update/{id}
//	PATCH /api/clients/update-status/{id}
//	PATCH /api/clients/toggle-financial-status/{id}
//	GET   /api/users/list-all
//	POST  /api/users/create
//	PATCH /api/users/update/{id}
//	PATCH /api/users/update-status/{id}
//	GET   /api/orders/list-all
//	GET   /api/orders/client/{clientID}
//	POST  /api/orders/create
//	PATCH /api/orders/{id}/toggle-payment
//	GET   /metrics
func NewRouter(
	authHandler *AuthHandler,
	clientHandler *ClientHandler,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	jwtSecret string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(metrics.Instrument)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(jwtSecret))

			r.Route("/clients", func(r chi.Router) {
				r.Get("/list-all", clientHandler.ListAll)
				r.Post("/create", clientHandler.Create)
				r.Patch("/update/{id}", clientHandler.Update)
				r.Patch("/update-status/{id}", clientHandler.ToggleStatus)
				r.Patch("/toggle-financial-status/{id}", clientHandler.ToggleFinancialStatus)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/list-all", userHandler.ListAll)
				r.Post("/create", userHandler.Create)
				r.Patch("/update/{id}", userHandler.Update)
				r.Patch("/update-status/{id}", userHandler.ToggleStatus)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/list-all", orderHandler.ListAll)
				r.Get("/client/{clientID}", orderHandler.ListByClient)
				r.Post("/create", orderHandler.Create)
				r.Patch("/{id}/toggle-payment", orderHandler.TogglePayment)
			})
		})
	})

	return r
}
