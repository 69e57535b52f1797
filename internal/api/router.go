package api

import (
	"booking-location-service/internal/api/handlers"
	"booking-location-service/internal/platform/obs"
	"booking-location-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.LocationService, health map[string]handlers.Pinger, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	obs.RegisterDefault()

	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(log))

	healthHandler := &handlers.HealthHandler{Deps: health}
	locationHandler := &handlers.LocationHandler{Service: svc, Log: log}

	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	r.Route("/v1/tenants/{tenantID}", func(r chi.Router) {
		r.Post("/addresses/validate", locationHandler.ValidateAddress)
		r.Post("/travel", locationHandler.CalculateTravel)
		r.Post("/service-areas/coverage", locationHandler.CheckCoverage)
		r.Post("/routes/optimize", locationHandler.OptimizeRoute)
	})

	return r
}
