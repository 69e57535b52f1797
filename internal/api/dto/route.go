package dto

import (
	"booking-location-service/internal/domain"
	"time"
)

type BookingRequest struct {
	BookingID       string              `json:"booking_id" validate:"required,max=100"`
	Address         string              `json:"address" validate:"required_without=Coordinates,max=500"`
	Coordinates     *CoordinatesRequest `json:"coordinates" validate:"omitempty"`
	ServiceDuration int                 `json:"service_duration" validate:"gte=0,lte=1440"`
}

type OptimizeRouteRequest struct {
	Start    LocationRequest  `json:"start"`
	Bookings []BookingRequest `json:"bookings" validate:"required,min=1,max=100,dive"`
	DepartAt *time.Time       `json:"depart_at"`
}

func (r OptimizeRouteRequest) BookingStops() []domain.BookingStop {
	out := make([]domain.BookingStop, 0, len(r.Bookings))
	for _, b := range r.Bookings {
		stop := domain.BookingStop{
			BookingID:       b.BookingID,
			Address:         b.Address,
			ServiceDuration: b.ServiceDuration,
		}
		if b.Coordinates != nil {
			c := b.Coordinates.ToDomain()
			stop.Coordinates = &c
		}
		out = append(out, stop)
	}
	return out
}

// OptimizeRouteResponse echoes the departure used for the arrival estimates.
type OptimizeRouteResponse struct {
	DepartAt time.Time `json:"depart_at"`
	domain.RouteOptimization
}
