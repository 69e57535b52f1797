package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude) in WGS-84 degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether c is a finite point within latitude ±90 and longitude ±180.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Key renders coordinates rounded to 4 decimals (~11m), used in cache signatures.
func (c Coordinates) Key() string { return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lng) }

// Rectangular latitude/longitude box a geocoding result must fall inside.
type CountryBounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// IndonesiaBounds is the default supported-country box.
var IndonesiaBounds = CountryBounds{MinLat: -11, MaxLat: 6, MinLng: 95, MaxLng: 141}

// Location is either explicit coordinates or a free-text address to geocode.
// Coordinates win when both are set.
type Location struct {
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Address     string       `json:"address,omitempty"`
}

func LocationAt(lat, lng float64) Location {
	return Location{Coordinates: &Coordinates{Lat: lat, Lng: lng}}
}

func LocationFromAddress(address string) Location {
	return Location{Address: address}
}

func (l Location) String() string {
	if l.Coordinates != nil {
		return l.Coordinates.Key()
	}
	return l.Address
}
