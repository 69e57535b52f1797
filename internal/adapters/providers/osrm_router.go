package providers

import (
	"booking-location-service/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

var errNoRoute = errors.New("osrm returned no routes")

type OSRMConfig struct {
	BaseURL   string
	Profile   string
	UserAgent string
	Timeout   time.Duration
}

// OSRMRouter implements RoutingProvider using the OSRM /route service.
type OSRMRouter struct {
	session httpSession
	baseURL string
	profile string
}

func NewOSRMRouter(cfg OSRMConfig) *OSRMRouter {
	profile := cfg.Profile
	if profile == "" {
		profile = "driving"
	}

	return &OSRMRouter{
		session: newHTTPSession(cfg.Timeout, cfg.UserAgent),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: profile,
	}
}

func (o *OSRMRouter) Name() string { return OSRM }

// Route fetches the full-geometry driving route between two points.
// Distance is converted to km and duration to whole minutes, rounded up.
func (o *OSRMRouter) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.RouteInfo, err error) {
	defer func() { recordCall(OSRM, "route", err) }()

	// OSRM takes lng,lat pairs.
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f",
		o.baseURL, o.profile,
		origin.Lng, origin.Lat,
		destination.Lng, destination.Lat,
	)

	req, err := o.session.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.RouteInfo{}, fmt.Errorf("osrm route request: %w", err)
	}

	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	req.URL.RawQuery = q.Encode()

	resp, err := o.session.do(req)
	if err != nil {
		return domain.RouteInfo{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteInfo{}, fmt.Errorf("decode osrm response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return domain.RouteInfo{}, fmt.Errorf("%w (code=%q)", errNoRoute, decoded.Code)
	}

	route := decoded.Routes[0]
	polyline := make([]domain.Coordinates, 0, len(route.Geometry.Coordinates))
	for i, pair := range route.Geometry.Coordinates {
		if len(pair) < 2 {
			return domain.RouteInfo{}, fmt.Errorf("osrm geometry point #%d: expected [lng,lat], got %v", i, pair)
		}
		polyline = append(polyline, domain.Coordinates{Lat: pair[1], Lng: pair[0]})
	}

	return domain.RouteInfo{
		Distance: route.Distance / 1000,
		Duration: int(math.Ceil(route.Duration / 60)),
		Polyline: polyline,
	}, nil
}
