// README: GeoResolver backed by the OpenStreetMap Nominatim search API.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freightdesk/internal/types"
)

type NominatimResolver struct {
	baseURL string
	http    *httpClient
}

// NewNominatimResolver builds a resolver for baseURL (the /search endpoint).
// Nominatim's usage policy requires a descriptive user agent.
func NewNominatimResolver(baseURL, userAgent string, timeout time.Duration) *NominatimResolver {
	return &NominatimResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout, userAgent),
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (r *NominatimResolver) Resolve(ctx context.Context, place string) (types.Point, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return types.Point{}, fmt.Errorf("%w: empty place name", ErrPlaceNotFound)
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	resp, err := r.http.getWithRetry(ctx, r.baseURL+"?"+q.Encode())
	if err != nil {
		return types.Point{}, fmt.Errorf("nominatim search %q: %w", place, err)
	}
	defer resp.Body.Close()

	var results []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return types.Point{}, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%w: %s", ErrPlaceNotFound, place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return types.Point{}, fmt.Errorf("parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return types.Point{}, fmt.Errorf("parse lon: %w", err)
	}
	return types.Point{Lat: lat, Lng: lng}, nil
}
