// README: GeoResolver and RoadRouter backed by the Google Maps Platform.
package maps

import (
	"context"
	"fmt"
	"strings"
	"time"

	gmaps "googlemaps.github.io/maps"

	"freightdesk/internal/types"
)

// NewGoogleClient creates a Maps client with the given API key. Extra options
// are passed through (tests point the client at a local server).
func NewGoogleClient(apiKey string, opts ...gmaps.ClientOption) (*gmaps.Client, error) {
	opts = append([]gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}, opts...)
	client, err := gmaps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

type GoogleResolver struct {
	client *gmaps.Client
}

func NewGoogleResolver(client *gmaps.Client) *GoogleResolver {
	return &GoogleResolver{client: client}
}

func (r *GoogleResolver) Resolve(ctx context.Context, place string) (types.Point, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return types.Point{}, fmt.Errorf("%w: empty place name", ErrPlaceNotFound)
	}
	results, err := r.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: place})
	if err != nil {
		return types.Point{}, fmt.Errorf("maps geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%w: %s", ErrPlaceNotFound, place)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

type GoogleRouter struct {
	client *gmaps.Client
}

func NewGoogleRouter(client *gmaps.Client) *GoogleRouter {
	return &GoogleRouter{client: client}
}

func (r *GoogleRouter) Route(ctx context.Context, from, to types.Point) (Route, error) {
	req := &gmaps.DirectionsRequest{
		Origin:      from.String(),
		Destination: to.String(),
		Mode:        gmaps.TravelModeDriving,
	}
	routes, _, err := r.client.Directions(ctx, req)
	if err != nil {
		return Route{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Route{}, ErrNoRoute
	}

	best := routes[0]
	var meters int
	var duration time.Duration
	for _, leg := range best.Legs {
		meters += leg.Distance.Meters
		duration += leg.Duration
	}

	var geometry []types.Point
	if best.OverviewPolyline.Points != "" {
		path, err := best.OverviewPolyline.Decode()
		if err != nil {
			return Route{}, fmt.Errorf("decode polyline: %w", err)
		}
		geometry = make([]types.Point, 0, len(path))
		for _, p := range path {
			geometry = append(geometry, types.Point{Lat: p.Lat, Lng: p.Lng})
		}
	}

	return Route{
		DistanceKm:    float64(meters) / 1000,
		DurationHours: duration.Hours(),
		Geometry:      geometry,
	}, nil
}
