package providers

import (
	"booking-location-service/internal/ports"
	"fmt"
	"time"
)

// Provider names recognised by GEOCODING_PROVIDER / ROUTING_PROVIDER.
const (
	Nominatim = "nominatim"
	OSRM      = "osrm"
	Google    = "google"
	Mapbox    = "mapbox"
)

// Options carries the settings shared by every provider constructor.
type Options struct {
	APIKeys         map[string]string
	Country         string
	Language        string
	NominatimURL    string
	OSRMURL         string
	UserAgent       string
	NominatimRPS    float64
	ProviderTimeout time.Duration
}

// NewGeocoder selects the geocoding implementation by name. An empty name
// selects Nominatim.
func NewGeocoder(name string, opts Options) (ports.GeocodingProvider, error) {
	switch name {
	case "", Nominatim:
		return NewNominatimGeocoder(NominatimConfig{
			BaseURL:           opts.NominatimURL,
			Country:           opts.Country,
			Language:          opts.Language,
			UserAgent:         opts.UserAgent,
			Timeout:           opts.ProviderTimeout,
			RequestsPerSecond: opts.NominatimRPS,
		}), nil
	case Google:
		return NewGoogleGeocoder(opts.APIKeys[Google]), nil
	case Mapbox:
		return NewMapboxGeocoder(opts.APIKeys[Mapbox]), nil
	default:
		return nil, fmt.Errorf("unknown geocoding provider %q", name)
	}
}

// NewRouter selects the routing implementation by name. An empty name selects OSRM.
func NewRouter(name string, opts Options) (ports.RoutingProvider, error) {
	switch name {
	case "", OSRM:
		return NewOSRMRouter(OSRMConfig{
			BaseURL:   opts.OSRMURL,
			UserAgent: opts.UserAgent,
			Timeout:   opts.ProviderTimeout,
		}), nil
	case Google:
		return NewGoogleRouter(opts.APIKeys[Google]), nil
	case Mapbox:
		return NewMapboxRouter(opts.APIKeys[Mapbox]), nil
	default:
		return nil, fmt.Errorf("unknown routing provider %q", name)
	}
}
