package services

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/geo"
	"booking-location-service/internal/platform/obs"
	"context"

	"go.uber.org/zap"
)

// CheckServiceAreaCoverage matches point against the tenant's active service
// areas in stored order. The first containing area wins.
//
// A tenant without areas covers everywhere. A failed lookup also reports
// coverage, with Degraded set, so bookings are never blocked by it.
func (s *LocationService) CheckServiceAreaCoverage(
	ctx context.Context,
	point domain.Coordinates,
	tenantID string,
	serviceID string,
) domain.CoverageResult {
	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	areas, err := s.areas.ListActiveServiceAreas(lookupCtx, tenantID)
	if err != nil {
		return domain.CoverageResult{
			IsWithinArea: true,
			Degraded:     s.degraded(ctx, "coverage", domain.Degrade(domain.ReasonServiceAreaLookupFailed, err)),
		}
	}

	if len(areas) == 0 {
		return domain.CoverageResult{IsWithinArea: true}
	}

	for _, area := range areas {
		vertices, ok := geo.Vertices(area.Boundaries)
		if !ok {
			s.log.Warn("service area has unusable boundaries",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("tenant_id", tenantID),
				zap.String("service_area_id", area.ID),
			)
			continue
		}
		if !geo.PointInPolygon(point, vertices) {
			continue
		}

		// Area found, but the requested service is not offered there.
		if serviceID != "" && !area.Offers(serviceID) {
			return domain.CoverageResult{
				IsWithinArea:  false,
				Surcharge:     area.BaseTravelSurcharge,
				ServiceAreaID: area.ID,
			}
		}

		return domain.CoverageResult{
			IsWithinArea:  true,
			Surcharge:     area.BaseTravelSurcharge,
			ServiceAreaID: area.ID,
		}
	}

	return domain.CoverageResult{
		IsWithinArea: false,
		Surcharge:    minBaseSurcharge(areas),
	}
}

func minBaseSurcharge(areas []domain.ServiceArea) int64 {
	if len(areas) == 0 {
		return 0
	}

	lowest := areas[0].BaseTravelSurcharge
	for _, a := range areas[1:] {
		lowest = min(lowest, a.BaseTravelSurcharge)
	}
	return lowest
}
