package services

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/geo"
	"booking-location-service/internal/platform/obs"
	"booking-location-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Provider durations are padded for traffic and parking.
const providerDurationBuffer = 1.2

// bufferedProviderMinutes pads a routing provider's duration.
func bufferedProviderMinutes(providerMinutes int) int {
	return int(math.Ceil(float64(providerMinutes) * providerDurationBuffer))
}

// straightLineMinutes estimates driving time from straight-line distance at
// 2 minutes per km.
func straightLineMinutes(km float64) int {
	return int(math.Ceil(km * 2))
}

// flatLegMinutes is the optimizer's per-leg estimate: straight-line time plus
// 5 minutes to park and reach the door.
func flatLegMinutes(km float64) int {
	return straightLineMinutes(km) + 5
}

func travelCacheKey(tenantID, serviceID string, origin, destination domain.Coordinates) string {
	return fmt.Sprintf("travel_calculation:%s:%s:%s:%s", tenantID, serviceID, origin.Key(), destination.Key())
}

// getRouteInfo asks the routing provider for a route. ok is false when the
// provider failed and the caller should fall back. err is non-nil only for a
// provider that is not implemented.
func (s *LocationService) getRouteInfo(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.RouteInfo, ok bool, err error) {
	info, err := s.router.Route(ctx, origin, destination)
	if errors.Is(err, ports.ErrNotImplemented) {
		return domain.RouteInfo{}, false, fmt.Errorf("get route info: router %q: %w", s.router.Name(), err)
	}
	if err != nil {
		s.log.Warn("routing failed, falling back to straight line",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("provider", s.router.Name()),
			zap.String("origin", origin.Key()),
			zap.String("destination", destination.Key()),
			zap.Error(err),
		)
		return domain.RouteInfo{}, false, nil
	}

	return info, true, nil
}

// CalculateTravel prices a home visit from origin to destination.
//
// It never fails: when a step cannot complete the zero calculation is returned
// with Degraded describing why. Provider failures fall back to straight-line
// distance and are not degradations.
func (s *LocationService) CalculateTravel(
	ctx context.Context,
	origin domain.Location,
	destination domain.Location,
	tenantID string,
	serviceID string,
) (result domain.TravelCalculation) {
	var err error
	defer obs.Time(ctx, s.log, "location.CalculateTravel")(&err)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("calculate travel panicked",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Stringer("origin", origin),
				zap.Stringer("destination", destination),
				zap.String("tenant_id", tenantID),
				zap.String("service_id", serviceID),
				zap.Any("panic", r),
				zap.StackSkip("stack", 2),
			)
			err = fmt.Errorf("calculate travel: panic: %v", r)
			result = domain.ZeroTravel(s.degraded(ctx, "calculate_travel", domain.Degrade(domain.ReasonUnexpectedFailure, err)))
		}
	}()

	from, err := s.ResolveLocation(ctx, tenantID, origin)
	if err != nil {
		return domain.ZeroTravel(s.degraded(ctx, "calculate_travel", domain.Degrade(unresolvedReason(err), err)))
	}
	to, err := s.ResolveLocation(ctx, tenantID, destination)
	if err != nil {
		return domain.ZeroTravel(s.degraded(ctx, "calculate_travel", domain.Degrade(unresolvedReason(err), err)))
	}

	key := travelCacheKey(tenantID, serviceID, from, to)
	var cached domain.TravelCalculation
	if s.cacheGet(ctx, key, &cached) {
		return cached
	}

	straight := geo.HaversineDistance(from, to)
	calc := domain.TravelCalculation{
		Distance: straight,
		Duration: straightLineMinutes(straight),
		Source:   domain.SourceHaversine,
	}

	route, ok, err := s.getRouteInfo(ctx, from, to)
	if err != nil {
		return domain.ZeroTravel(s.degraded(ctx, "calculate_travel", domain.Degrade(domain.ReasonProviderNotImplemented, err)))
	}
	if ok {
		calc.Distance = route.Distance
		calc.Duration = bufferedProviderMinutes(route.Duration)
		calc.Route = route.Polyline
		calc.Source = domain.SourceProvider
	}

	coverage := s.CheckServiceAreaCoverage(ctx, to, tenantID, serviceID)
	calc.IsWithinServiceArea = coverage.IsWithinArea
	calc.ServiceAreaID = coverage.ServiceAreaID
	calc.Degraded = coverage.Degraded
	calc.Surcharge = coverage.Surcharge

	// A zero area surcharge cannot be told apart from "not configured", so
	// tenant pricing applies.
	if calc.Surcharge == 0 {
		settings, serr := s.loadSettings(ctx, tenantID)
		if serr != nil {
			if calc.Degraded == nil {
				calc.Degraded = s.degraded(ctx, "calculate_travel", domain.Degrade(domain.ReasonTenantSettingsUnavailable, serr))
			}
		} else {
			calc.Surcharge = domain.CalculateTravelSurcharge(calc.Distance, settings)
		}
	}

	if calc.Degraded == nil {
		s.cacheSet(ctx, key, calc)
	}

	return calc
}
