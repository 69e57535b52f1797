package domain

import "math"

// Tenant-level travel pricing used when no service area surcharge applies.
type TravelSurchargeSettings struct {
	BaseTravelSurcharge     float64  `json:"base_travel_surcharge"`
	PerKmSurcharge          float64  `json:"per_km_surcharge"`
	MinTravelDistance       *float64 `json:"min_travel_distance,omitempty"`
	MaxTravelDistance       *float64 `json:"max_travel_distance,omitempty"`
	TravelSurchargeRequired bool     `json:"travel_surcharge_required"`
}

// DefaultPerKmSurcharge is charged per km when a tenant has no travel settings.
const DefaultPerKmSurcharge = 5000

// FallbackSurchargeSettings is used by route optimisation when tenant settings
// cannot be loaded.
func FallbackSurchargeSettings() TravelSurchargeSettings {
	return TravelSurchargeSettings{PerKmSurcharge: DefaultPerKmSurcharge}
}

// CalculateTravelSurcharge prices a trip of distanceKm under settings.
//
// Trips shorter than MinTravelDistance are free. Trips longer than
// MaxTravelDistance also price at 0; whether such a booking is allowed at all
// is the caller's decision. The result is rounded up to a whole currency unit.
func CalculateTravelSurcharge(distanceKm float64, settings TravelSurchargeSettings) int64 {
	if settings.MinTravelDistance != nil && distanceKm < *settings.MinTravelDistance {
		return 0
	}
	if settings.MaxTravelDistance != nil && distanceKm > *settings.MaxTravelDistance {
		return 0
	}

	return int64(math.Ceil(settings.BaseTravelSurcharge + distanceKm*settings.PerKmSurcharge))
}
