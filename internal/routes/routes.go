// Package routes defines the API routing configuration.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"moneroreq/internal/handlers"
	"moneroreq/internal/middleware"
	"moneroreq/internal/models"
	"moneroreq/internal/services/paymentrequest"
)

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	PaymentRequests paymentrequest.Service
	Health          *handlers.HealthHandler
	// Auth protects issuing and the ledger reads. Nil leaves them open.
	Auth *middleware.AuthMiddleware
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.HealthCheck)
	}
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	h := handlers.NewPaymentRequestHandler(deps.PaymentRequests)
	issue := protect(deps.Auth, models.PermissionPaymentRequestIssue)
	read := protect(deps.Auth, models.PermissionPaymentRequestRead)

	api := app.Group("/api")

	// Decoding is public: codes are shared with payers.
	pr := api.Group("/payment-requests")
	pr.Post("/decode", h.Decode)
	pr.Get("/decode/schedule", h.Schedule)
	pr.Post("/", append(issue, h.Issue)...)
	pr.Get("/:payment_id", append(read, h.Lookup)...)

	api.Get("/wallets/:wallet/payment-requests", append(read, h.ListByWallet)...)
}

func protect(auth *middleware.AuthMiddleware, permission string) []fiber.Handler {
	if auth == nil {
		return nil
	}
	return []fiber.Handler{auth.Handler, middleware.HasPermission(permission)}
}
