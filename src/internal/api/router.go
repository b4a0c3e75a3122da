package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(Recovery)
	r.Use(Logger)
	r.Use(PrivateSubnetOnly) // Restrict access to private subnets
	r.Use(CORS)
	r.Use(ReadOnly)

	h := NewHandler(deps)

	// API v1 routes, all read-only
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.CheckHealth)
		r.Get("/status", h.GetStatus)

		r.Get("/interfaces", h.GetInterfaces)
		r.Get("/select", h.SelectInterfaces)
		r.Get("/subnet", h.MatchSubnet)
		r.Get("/resolve", h.ResolveEndpoint)
		r.Get("/local", h.IsLocal)
	})

	registerPprof(r)

	return r
}
