package geo

import (
	"booking-location-service/internal/domain"
	"bytes"
	"encoding/json"
)

// Polygon is the object form of stored service-area boundaries.
type Polygon struct {
	Type        string               `json:"type,omitempty"`
	Coordinates []domain.Coordinates `json:"coordinates"`
}

// PointInPolygon reports whether point lies inside the polygon described by shape.
//
// shape may be a vertex slice, a Polygon, or raw JSON holding either a bare
// vertex array or an object with a "coordinates" array. Anything else, and any
// polygon with fewer than three vertices, is treated as "not inside".
func PointInPolygon(point domain.Coordinates, shape any) bool {
	vertices, ok := Vertices(shape)
	if !ok {
		return false
	}
	return containsPoint(point, vertices)
}

// Vertices extracts the ordered vertex list from any shape PointInPolygon accepts.
func Vertices(shape any) ([]domain.Coordinates, bool) {
	switch s := shape.(type) {
	case []domain.Coordinates:
		return s, true
	case Polygon:
		return s.Coordinates, s.Coordinates != nil
	case *Polygon:
		if s == nil || s.Coordinates == nil {
			return nil, false
		}
		return s.Coordinates, true
	case json.RawMessage:
		return parseBoundaries(s)
	case []byte:
		return parseBoundaries(s)
	default:
		return nil, false
	}
}

func parseBoundaries(raw []byte) ([]domain.Coordinates, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false
	}

	switch raw[0] {
	case '[':
		var vertices []domain.Coordinates
		if err := json.Unmarshal(raw, &vertices); err != nil {
			return nil, false
		}
		return vertices, true
	case '{':
		var p struct {
			Coordinates *[]domain.Coordinates `json:"coordinates"`
		}
		if err := json.Unmarshal(raw, &p); err != nil || p.Coordinates == nil {
			return nil, false
		}
		return *p.Coordinates, true
	default:
		return nil, false
	}
}

// Ray casting with lat on the x axis and lng on the y axis.
func containsPoint(point domain.Coordinates, vertices []domain.Coordinates) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := vertices[i].Lat, vertices[i].Lng
		xj, yj := vertices[j].Lat, vertices[j].Lng

		if (yi > point.Lng) != (yj > point.Lng) &&
			point.Lat < (xj-xi)*(point.Lng-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside
}
