package services

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/geo"
	"booking-location-service/internal/platform/obs"
	"booking-location-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var errUnresolved = errors.New("location could not be resolved")

func addressCacheKey(tenantID, address string) string {
	return "address_validation:" + tenantID + ":" + address
}

// ValidateAddress geocodes free text into an address inside the supported
// country.
//
// Lookup failures come back as an invalid result, never as an error. The
// error is reserved for a geocoder that is not implemented.
func (s *LocationService) ValidateAddress(
	ctx context.Context,
	tenantID string,
	addressText string,
) (_ domain.AddressValidation, err error) {
	defer obs.Time(ctx, s.log, "location.ValidateAddress")(&err)

	text := strings.TrimSpace(addressText)
	if text == "" {
		return domain.InvalidAddress(domain.ErrMsgAddressRequired), nil
	}

	key := addressCacheKey(tenantID, text)
	var cached domain.AddressValidation
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	candidates, err := s.geocoder.Geocode(ctx, text, geocodeCandidateLimit)
	if errors.Is(err, ports.ErrNotImplemented) {
		return domain.InvalidAddress(domain.ErrMsgGeocoderUnavailable),
			fmt.Errorf("validate address: geocoder %q: %w", s.geocoder.Name(), err)
	}
	if err != nil {
		s.log.Warn("geocoding failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("provider", s.geocoder.Name()),
			zap.String("address", text),
			zap.Error(err),
		)
		return domain.InvalidAddress(domain.ErrMsgGeocoderUnavailable), nil
	}

	if len(candidates) == 0 {
		return domain.InvalidAddress(domain.ErrMsgAddressNotFound), nil
	}

	primary := candidates[0]
	if !geo.IsValidCountryCoordinate(primary.Address.Coordinates, s.cfg.Bounds) {
		return domain.InvalidAddress(domain.ErrMsgOutsideCountry), nil
	}

	suggestions := make([]domain.Address, 0, maxSuggestions)
	for _, c := range candidates[1:min(len(candidates), maxSuggestions+1)] {
		if geo.IsValidCountryCoordinate(c.Address.Coordinates, s.cfg.Bounds) {
			suggestions = append(suggestions, c.Address)
		}
	}

	confidence := defaultConfidence
	if primary.Importance != nil {
		confidence = *primary.Importance
	}

	addr := primary.Address
	result := domain.AddressValidation{
		IsValid:     true,
		Address:     &addr,
		Suggestions: suggestions,
		Confidence:  confidence,
	}
	s.cacheSet(ctx, key, result)

	return result, nil
}

// ResolveLocation returns explicit coordinates as given when they are valid, or
// geocodes the address text. Failures wrap errUnresolved or ports.ErrNotImplemented.
func (s *LocationService) ResolveLocation(
	ctx context.Context,
	tenantID string,
	loc domain.Location,
) (domain.Coordinates, error) {
	if loc.Coordinates != nil {
		if !loc.Coordinates.Valid() {
			return domain.Coordinates{}, fmt.Errorf("resolve location %s: invalid coordinates: %w", loc, errUnresolved)
		}
		return *loc.Coordinates, nil
	}

	v, err := s.ValidateAddress(ctx, tenantID, loc.Address)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("resolve location: %w", err)
	}
	if !v.IsValid || v.Address == nil {
		return domain.Coordinates{}, fmt.Errorf("resolve location %q: %s: %w", loc.Address, v.Error, errUnresolved)
	}

	return v.Address.Coordinates, nil
}

// unresolvedReason maps a ResolveLocation error to a degradation reason.
func unresolvedReason(err error) string {
	if errors.Is(err, ports.ErrNotImplemented) {
		return domain.ReasonProviderNotImplemented
	}
	return domain.ReasonLocationUnresolved
}
