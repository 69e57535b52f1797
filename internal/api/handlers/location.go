package handlers

import (
	"booking-location-service/internal/api/dto"
	"booking-location-service/internal/platform/obs"
	"booking-location-service/internal/ports"
	"booking-location-service/internal/services"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LocationHandler exposes the travel engine over HTTP. Every route is scoped
// to the {tenantID} path parameter.
type LocationHandler struct {
	Service *services.LocationService
	Log     *zap.Logger
	Now     func() time.Time
}

func (h *LocationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *LocationHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.Service.ValidateAddress(r.Context(), chi.URLParam(r, "tenantID"), req.Address)
	if errors.Is(err, ports.ErrNotImplemented) {
		h.Log.Error("geocoding provider not implemented", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		writeError(w, r, http.StatusNotImplemented, "geocoding provider not implemented")
		return
	}
	if err != nil {
		h.Log.Error("validate address failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// CalculateTravel always answers 200; failures are reported in the body's
// "degraded" field.
func (h *LocationHandler) CalculateTravel(w http.ResponseWriter, r *http.Request) {
	var req dto.TravelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res := h.Service.CalculateTravel(
		r.Context(),
		req.Origin.ToDomain(),
		req.Destination.ToDomain(),
		chi.URLParam(r, "tenantID"),
		req.ServiceID,
	)

	writeJSON(w, r, http.StatusOK, res)
}

func (h *LocationHandler) CheckCoverage(w http.ResponseWriter, r *http.Request) {
	var req dto.CoverageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res := h.Service.CheckServiceAreaCoverage(r.Context(), req.Point.ToDomain(), chi.URLParam(r, "tenantID"), req.ServiceID)
	writeJSON(w, r, http.StatusOK, res)
}

func (h *LocationHandler) OptimizeRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	depart := h.now()
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	plan := h.Service.OptimizeRoute(r.Context(), req.Start.ToDomain(), req.BookingStops(), chi.URLParam(r, "tenantID"), depart)

	writeJSON(w, r, http.StatusOK, dto.OptimizeRouteResponse{DepartAt: depart, RouteOptimization: plan})
}
