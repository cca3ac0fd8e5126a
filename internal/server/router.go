package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

// NewRouter wires middleware, operational endpoints and the calculator routes.
//
// Recovery sits below logging and metrics so a recovered panic is still
// logged and counted with its 500 status.
func NewRouter(cfg config.Config) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(observability.MetricsMiddleware)
	r.Use(observability.RecoveryMiddleware)
	r.Use(observability.BodyLimitMiddleware(cfg.MaxBodyBytes))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	dispatcher := calculator.NewDispatcher(calculator.NewRegistry(), calculator.Options{
		EnrichErrors:   cfg.EnrichErrors,
		WelcomeMessage: cfg.WelcomeMessage,
	})
	calculator.RegisterRoutes(r, dispatcher)

	return r
}
