package providers

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/ports"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type nominatimResult struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	Importance  *float64 `json:"importance"`
	Address     struct {
		HouseNumber string `json:"house_number"`
		Road        string `json:"road"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Postcode    string `json:"postcode"`
		Country     string `json:"country"`
	} `json:"address"`
}

type NominatimConfig struct {
	BaseURL   string
	Country   string
	Language  string
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond caps outbound calls; <= 0 disables the limit.
	RequestsPerSecond float64
}

// NominatimGeocoder implements GeocodingProvider against an OpenStreetMap
// Nominatim instance (/search). It is safe for concurrent use.
type NominatimGeocoder struct {
	session  httpSession
	baseURL  string
	country  string
	language string
	limiter  *rate.Limiter
}

func NewNominatimGeocoder(cfg NominatimConfig) *NominatimGeocoder {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &NominatimGeocoder{
		session:  newHTTPSession(cfg.Timeout, cfg.UserAgent),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		country:  cfg.Country,
		language: cfg.Language,
		limiter:  limiter,
	}
}

func (n *NominatimGeocoder) Name() string { return Nominatim }

// Geocode runs a free-text search restricted to the configured country.
func (n *NominatimGeocoder) Geocode(
	ctx context.Context,
	text string,
	limit int,
) (_ []ports.GeocodeCandidate, err error) {
	defer func() { recordCall(Nominatim, "geocode", err) }()

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim rate limit: %w", err)
	}

	req, err := n.session.newRequest(ctx, http.MethodGet, n.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim search request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", text)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(limit))
	if n.country != "" {
		q.Set("countrycodes", n.country)
	}
	if n.language != "" {
		q.Set("accept-language", n.language)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := n.session.do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}

	out := make([]ports.GeocodeCandidate, 0, len(decoded))
	for i, r := range decoded {
		c, err := r.toCandidate()
		if err != nil {
			// Only a broken best match fails the lookup; later ones are dropped.
			if i == 0 {
				return nil, fmt.Errorf("nominatim result #1: %w", err)
			}
			continue
		}
		out = append(out, c)
	}

	return out, nil
}

func (r nominatimResult) toCandidate() (ports.GeocodeCandidate, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("invalid lat %q: %w", r.Lat, err)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return ports.GeocodeCandidate{}, fmt.Errorf("invalid lon %q: %w", r.Lon, err)
	}

	street := r.Address.Road
	if street != "" && r.Address.HouseNumber != "" {
		street += " " + r.Address.HouseNumber
	}

	return ports.GeocodeCandidate{
		Address: domain.Address{
			Street:      street,
			City:        firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village),
			State:       r.Address.State,
			PostalCode:  r.Address.Postcode,
			Country:     r.Address.Country,
			FullAddress: r.DisplayName,
			Coordinates: domain.Coordinates{Lat: lat, Lng: lng},
		},
		Importance: r.Importance,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
