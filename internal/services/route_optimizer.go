package services

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/geo"
	"booking-location-service/internal/platform/obs"
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type resolvedStop struct {
	booking domain.BookingStop
	coords  domain.Coordinates
}

// OptimizeRoute orders bookings into a visiting sequence starting at start,
// using a greedy nearest-neighbor walk over straight-line distance.
//
// The algorithm minimizes the immediate leg at each step. It does not attempt
// global route optimization, so the result is not guaranteed shortest.
// Bookings that cannot be resolved are skipped. An unresolvable start, or no
// resolvable bookings, yields the empty route.
func (s *LocationService) OptimizeRoute(
	ctx context.Context,
	start domain.Location,
	bookings []domain.BookingStop,
	tenantID string,
	departAt time.Time,
) domain.RouteOptimization {
	var err error
	defer obs.Time(ctx, s.log, "location.OptimizeRoute")(&err)

	if departAt.IsZero() {
		departAt = s.clock()
	}

	origin, stops, err := s.resolveStops(ctx, start, bookings, tenantID)
	if err != nil || len(stops) == 0 {
		return domain.EmptyRoute()
	}

	settings, serr := s.loadSettings(ctx, tenantID)
	if serr != nil {
		s.degraded(ctx, "optimize_route", domain.Degrade(domain.ReasonTenantSettingsUnavailable, serr))
		settings = s.cfg.FallbackSurcharge
	}

	return s.nearestNeighbor(origin, stops, departAt, settings)
}

// resolveStops resolves start and every booking concurrently. The returned
// stops keep input order.
func (s *LocationService) resolveStops(
	ctx context.Context,
	start domain.Location,
	bookings []domain.BookingStop,
	tenantID string,
) (domain.Coordinates, []resolvedStop, error) {
	var origin domain.Coordinates
	var originErr error
	resolved := make([]*resolvedStop, len(bookings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.ResolveConcurrency)

	g.Go(func() error {
		origin, originErr = s.ResolveLocation(gctx, tenantID, start)
		return nil
	})

	for i, b := range bookings {
		i, b := i, b
		g.Go(func() error {
			loc := domain.Location{Coordinates: b.Coordinates, Address: b.Address}
			c, err := s.ResolveLocation(gctx, tenantID, loc)
			if err != nil {
				s.log.Warn("skipping unresolvable booking",
					zap.String("req_id", obs.RequestID(ctx)),
					zap.String("booking_id", b.BookingID),
					zap.Error(err),
				)
				return nil
			}
			resolved[i] = &resolvedStop{booking: b, coords: c}
			return nil
		})
	}
	_ = g.Wait()

	if originErr != nil {
		s.degraded(ctx, "optimize_route", domain.Degrade(unresolvedReason(originErr), originErr))
		return domain.Coordinates{}, nil, originErr
	}

	stops := make([]resolvedStop, 0, len(resolved))
	for _, r := range resolved {
		if r != nil {
			stops = append(stops, *r)
		}
	}

	return origin, stops, nil
}

func (s *LocationService) nearestNeighbor(
	origin domain.Coordinates,
	stops []resolvedStop,
	departAt time.Time,
	settings domain.TravelSurchargeSettings,
) domain.RouteOptimization {
	remaining := make([]resolvedStop, len(stops))
	copy(remaining, stops)

	currentTime := departAt
	currentLocation := origin

	out := domain.RouteOptimization{Stops: make([]domain.RouteStop, 0, len(stops))}

	for len(remaining) > 0 {
		best := -1
		minDistance := math.Inf(1)

		// Select next stop by minimum straight-line distance (greedy step).
		for i, r := range remaining {
			d := geo.HaversineDistance(currentLocation, r.coords)
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if best == -1 || d < minDistance || (d == minDistance && r.booking.BookingID < remaining[best].booking.BookingID) {
				minDistance = d
				best = i
			}
		}

		next := remaining[best]
		travel := flatLegMinutes(minDistance)
		service := next.booking.ServiceDuration
		if service <= 0 {
			service = s.cfg.DefaultServiceDuration
		}
		surcharge := domain.CalculateTravelSurcharge(minDistance, settings)

		currentTime = currentTime.Add(time.Duration(travel) * time.Minute)
		out.Stops = append(out.Stops, domain.RouteStop{
			BookingID:              next.booking.BookingID,
			Address:                next.booking.Address,
			Coordinates:            next.coords,
			EstimatedArrival:       currentTime,
			ServiceTime:            service,
			TravelTimeFromPrevious: travel,
			DistanceFromPrevious:   minDistance,
			Surcharge:              surcharge,
		})
		currentTime = currentTime.Add(time.Duration(service) * time.Minute)

		out.TotalDistance += minDistance
		out.TotalDuration += travel + service
		out.TotalSurcharge += surcharge

		remaining = append(remaining[:best], remaining[best+1:]...)
		currentLocation = next.coords
	}

	return out
}
