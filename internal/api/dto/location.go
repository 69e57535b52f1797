package dto

import "booking-location-service/internal/domain"

type CoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

func (c CoordinatesRequest) ToDomain() domain.Coordinates {
	return domain.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

// LocationRequest is a coordinate pair or an address to geocode.
type LocationRequest struct {
	Coordinates *CoordinatesRequest `json:"coordinates" validate:"omitempty"`
	Address     string              `json:"address" validate:"required_without=Coordinates,max=500"`
}

func (l LocationRequest) ToDomain() domain.Location {
	out := domain.Location{Address: l.Address}
	if l.Coordinates != nil {
		c := l.Coordinates.ToDomain()
		out.Coordinates = &c
	}
	return out
}

type ValidateAddressRequest struct {
	Address string `json:"address" validate:"required,max=500"`
}

type TravelRequest struct {
	Origin      LocationRequest `json:"origin"`
	Destination LocationRequest `json:"destination"`
	ServiceID   string          `json:"service_id" validate:"max=100"`
}

type CoverageRequest struct {
	Point     CoordinatesRequest `json:"point"`
	ServiceID string             `json:"service_id" validate:"max=100"`
}
