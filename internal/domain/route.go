package domain

import "time"

// A home-visit booking to be placed on a route.
// Coordinates, when set, skip geocoding of Address.
type BookingStop struct {
	BookingID       string       `json:"booking_id"`
	Address         string       `json:"address"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	ServiceDuration int          `json:"service_duration"`
}

// Represents a single visit in an optimised route.
// Times are in minutes, distances in km.
type RouteStop struct {
	BookingID              string      `json:"booking_id"`
	Address                string      `json:"address"`
	Coordinates            Coordinates `json:"coordinates"`
	EstimatedArrival       time.Time   `json:"estimated_arrival"`
	ServiceTime            int         `json:"service_time"`
	TravelTimeFromPrevious int         `json:"travel_time_from_previous"`
	DistanceFromPrevious   float64     `json:"distance_from_previous"`
	Surcharge              int64       `json:"surcharge"`
}

// Represents the visiting order produced by the route optimiser, along with
// aggregate distance, duration (travel plus service time) and surcharge.
// It is immutable planning data and contains no side effects.
type RouteOptimization struct {
	Stops          []RouteStop `json:"optimized_route"`
	TotalDistance  float64     `json:"total_distance"`
	TotalDuration  int         `json:"total_duration"`
	TotalSurcharge int64       `json:"total_surcharge"`
}

// EmptyRoute is returned when no booking could be placed.
func EmptyRoute() RouteOptimization {
	return RouteOptimization{Stops: []RouteStop{}}
}
