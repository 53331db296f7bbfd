// README: RoadRouter backed by an OSRM route service.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"freightdesk/internal/types"
)

type OSRMRouter struct {
	baseURL string
	http    *httpClient
}

// NewOSRMRouter expects baseURL to point at the driving profile, e.g.
// http://router.project-osrm.org/route/v1/driving.
func NewOSRMRouter(baseURL, userAgent string, timeout time.Duration) *OSRMRouter {
	return &OSRMRouter{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout, userAgent),
	}
}

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

func (r *OSRMRouter) Route(ctx context.Context, from, to types.Point) (Route, error) {
	// OSRM takes lon,lat pairs.
	u := fmt.Sprintf("%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		r.baseURL, from.Lng, from.Lat, to.Lng, to.Lat)

	resp, err := r.http.getWithRetry(ctx, u)
	if err != nil {
		return Route{}, fmt.Errorf("osrm route: %w", err)
	}
	defer resp.Body.Close()

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Route{}, fmt.Errorf("decode osrm response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return Route{}, fmt.Errorf("%w: osrm code %q", ErrNoRoute, body.Code)
	}

	best := body.Routes[0]
	geometry := make([]types.Point, 0, len(best.Geometry.Coordinates))
	for _, c := range best.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		geometry = append(geometry, types.Point{Lat: c[1], Lng: c[0]})
	}
	return Route{
		DistanceKm:    best.Distance / 1000,
		DurationHours: best.Duration / 3600,
		Geometry:      geometry,
	}, nil
}
