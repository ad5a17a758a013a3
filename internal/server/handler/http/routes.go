package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pocketbank/internal/metrics"
	"pocketbank/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the mock
// directory API. It applies JSON content-type enforcement, request logging,
// per-client rate limiting, and metrics collection, and mounts the user and
// bank account endpoints under /api/v1.
//
// Routes:
//
//	POST /api/v1/user            → userHandler.Create
//	GET  /api/v1/user            → userHandler.List
//	GET  /api/v1/user/{id}       → userHandler.Get
//	GET  /api/v1/bank-accounts   → accountHandler.List
//	POST /api/v1/bank-accounts   → accountHandler.Create
//	GET  /metrics                → Prometheus metrics
func NewRouter(
	userHandler *UserHandler,
	accountHandler *AccountHandler,
	limiter *middleware.RateLimiter,
	collector *metrics.Collector,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Reject clients that exceed the request budget
	r.Use(limiter.Middleware)
	// Record request counters and latency
	r.Use(collector.Middleware)

	// Mount API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/user", userHandler.Create)
		r.Get("/user", userHandler.List)
		r.Get("/user/{id}", userHandler.Get)

		r.Get("/bank-accounts", accountHandler.List)
		r.Post("/bank-accounts", accountHandler.Create)
	})

	r.Method(http.MethodGet, "/metrics", collector.Handler())

	return r
}
