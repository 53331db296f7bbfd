// README: Geocoding and road-routing contracts used by the quote flow.
package maps

import (
	"context"
	"errors"

	"freightdesk/internal/types"
)

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrNoRoute       = errors.New("no route found")
)

// Route is a road route between two points. Geometry is ordered from origin
// to destination and may be empty.
type Route struct {
	DistanceKm    float64       `json:"distance_km"`
	DurationHours float64       `json:"duration_hours"`
	Geometry      []types.Point `json:"geometry,omitempty"`
}

// GeoResolver maps a place name to coordinates. Unknown places fail with an
// error wrapping ErrPlaceNotFound.
type GeoResolver interface {
	Resolve(ctx context.Context, place string) (types.Point, error)
}

// RoadRouter returns the driving route between two points. Any error means the
// router is unavailable for this pair.
type RoadRouter interface {
	Route(ctx context.Context, from, to types.Point) (Route, error)
}
