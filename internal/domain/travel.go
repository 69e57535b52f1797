package domain

// Where a TravelCalculation's distance came from.
const (
	SourceProvider  = "provider"
	SourceHaversine = "haversine"
)

// Travel distance and duration between two coordinates as reported by a
// routing provider. Distance is in km, Duration in whole minutes.
type RouteInfo struct {
	Distance float64
	Duration int
	Polyline []Coordinates
}

// Result of a single origin -> destination travel calculation.
//
// A zero-valued calculation (Surcharge 0, IsWithinServiceArea false) is the
// universal "unknown" answer; Degraded says why it was produced.
type TravelCalculation struct {
	Distance            float64       `json:"distance"`
	Duration            int           `json:"duration"`
	Route               []Coordinates `json:"route,omitempty"`
	Surcharge           int64         `json:"surcharge"`
	IsWithinServiceArea bool          `json:"is_within_service_area"`
	ServiceAreaID       string        `json:"service_area_id,omitempty"`
	Source              string        `json:"source,omitempty"`
	Degraded            *Degradation  `json:"degraded,omitempty"`
}

// ZeroTravel is the safe answer returned whenever a calculation cannot complete.
func ZeroTravel(d *Degradation) TravelCalculation {
	return TravelCalculation{Degraded: d}
}
