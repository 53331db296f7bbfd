// README: Handler tests over an in-memory fleet and stubbed maps.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freightdesk/internal/http/handlers"
	"freightdesk/internal/maps"
	"freightdesk/internal/modules/booking"
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/modules/pricing"
	"freightdesk/internal/types"
)

type stubResolver map[string]types.Point

func (s stubResolver) Resolve(_ context.Context, place string) (types.Point, error) {
	if p, ok := s[place]; ok {
		return p, nil
	}
	return types.Point{}, errors.Join(maps.ErrPlaceNotFound, errors.New(place))
}

type stubRouter struct {
	route maps.Route
	err   error
}

func (s stubRouter) Route(_ context.Context, _, _ types.Point) (maps.Route, error) {
	return s.route, s.err
}

var costs = pricing.CostParameters{
	FuelPrice:          6.89,
	MonthlySalary:      2500,
	PerDiem:            150,
	WorkingDaysInMonth: 22,
	ProfitMargin:       0.30,
}

// buildTestRouter wires a minimal Gin engine with every handler over a seeded store.
func buildTestRouter(t *testing.T, router maps.RoadRouter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := fleet.NewMemoryStore()
	require.NoError(t, fleet.Seed(context.Background(), store))
	log := zap.NewNop()

	fleetSvc := fleet.NewService(store, log)
	geo := stubResolver{
		"São Paulo": {Lat: -23.5505, Lng: -46.6333},
		"Curitiba":  {Lat: -25.4284, Lng: -49.2733},
	}
	pricingSvc, err := pricing.NewService(store, geo, router, costs, log)
	require.NoError(t, err)
	bookingSvc := booking.NewService(store, nil, log)

	r := gin.New()
	vehicles := handlers.NewVehicleHandler(fleetSvc)
	r.GET("/api/v1/trucks", vehicles.List)
	r.POST("/api/v1/trucks", vehicles.Create)
	r.DELETE("/api/v1/trucks/:id", vehicles.Delete)
	drivers := handlers.NewDriverHandler(fleetSvc)
	r.GET("/api/v1/drivers", drivers.List)
	r.POST("/api/v1/drivers", drivers.Create)
	r.DELETE("/api/v1/drivers/:id", drivers.Delete)
	trips := handlers.NewTripHandler(fleetSvc, bookingSvc)
	r.GET("/api/v1/trips", trips.List)
	r.POST("/api/v1/trips/book", trips.Book)
	quotes := handlers.NewQuoteHandler(pricingSvc)
	r.POST("/api/v1/quote", quotes.Create)
	return r
}

func doRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestQuote_OK(t *testing.T) {
	r := buildTestRouter(t, stubRouter{route: maps.Route{DistanceKm: 900, DurationHours: 12}})
	w := doRequest(r, http.MethodPost, "/api/v1/quote", map[string]any{
		"origin": "São Paulo", "destination": "Curitiba", "vehicle_id": "vuc-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	q := decode[pricing.Quote](t, w)
	assert.Equal(t, 2, q.TripDays)
	assert.InDelta(t, 2229.68, q.SalePrice, 1e-9)
	assert.InDelta(t, 668.90, q.Breakdown.Profit, 1e-9)
	assert.Equal(t, "vuc-01", string(q.Vehicle.ID))
}

func TestQuote_Fallback(t *testing.T) {
	r := buildTestRouter(t, stubRouter{err: errors.New("timeout")})
	w := doRequest(r, http.MethodPost, "/api/v1/quote", map[string]any{
		"origin": "São Paulo", "destination": "Curitiba", "vehicle_id": "vuc-01",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Nil(t, raw["route_geometry"])
	assert.Greater(t, raw["distance_km"].(float64), 400.0)
}

func TestQuote_Errors(t *testing.T) {
	r := buildTestRouter(t, stubRouter{route: maps.Route{DistanceKm: 10, DurationHours: 1}})
	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unknown vehicle", map[string]any{"origin": "São Paulo", "destination": "Curitiba", "vehicle_id": "ghost"}, http.StatusNotFound},
		{"unknown place", map[string]any{"origin": "São Paulo", "destination": "Atlantis", "vehicle_id": "vuc-01"}, http.StatusNotFound},
		{"missing field", map[string]any{"origin": "São Paulo", "vehicle_id": "vuc-01"}, http.StatusBadRequest},
		{"negative override", map[string]any{"origin": "São Paulo", "destination": "Curitiba", "vehicle_id": "vuc-01", "per_diem_override": -5}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/v1/quote", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	w := doRequest(r, http.MethodPost, "/api/v1/quote", map[string]any{"origin": "São Paulo", "destination": "Atlantis", "vehicle_id": "vuc-01"})
	assert.Contains(t, w.Body.String(), "Atlantis")
}

func TestBook_ConflictReturns409(t *testing.T) {
	r := buildTestRouter(t, nil)
	body := map[string]any{
		"origin": "São Paulo", "destination": "Curitiba", "distance_km": 900,
		"final_price": 2229.68, "profit": 668.90, "driver_cost": 527.27,
		"vehicle_id": "vuc-01", "driver_id": "mot-01", "start_at": "2026-04-06T08:00:00-03:00",
	}
	w := doRequest(r, http.MethodPost, "/api/v1/trips/book", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booked struct {
		ID           string `json:"id"`
		EstimatedEnd string `json:"estimated_end"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booked))
	assert.Len(t, booked.ID, 8)
	assert.Equal(t, "2026-04-08T08:00:00-03:00", booked.EstimatedEnd)

	body["vehicle_id"] = "carreta-01"
	body["start_at"] = "2026-04-07T08:00:00-03:00"
	w = doRequest(r, http.MethodPost, "/api/v1/trips/book", body)
	require.Equal(t, http.StatusConflict, w.Code)

	var conflict map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.Equal(t, "driver", conflict["resource"])
	assert.Contains(t, conflict["error"], "06/04 08:00")

	w = doRequest(r, http.MethodGet, "/api/v1/trips", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decode[[]fleet.TripView](t, w)
	require.Len(t, views, 1)
	assert.Equal(t, "Carlos Silva", views[0].DriverName)
	assert.Equal(t, "ABC-1234", views[0].VehiclePlate)
}

func TestBook_BadRequests(t *testing.T) {
	r := buildTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/trips/book", map[string]any{"origin": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/trips/book", map[string]any{
		"origin": "A", "destination": "B", "vehicle_id": "ghost", "driver_id": "mot-01",
		"start_at": "2026-04-06T08:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/trips/book", map[string]any{
		"origin": "A", "destination": "B", "vehicle_id": "vuc-01", "driver_id": "mot-01",
		"start_at": "2026-04-06T08:00:00Z", "distance_km": -10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/trips?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog_CRUD(t *testing.T) {
	r := buildTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/trucks", map[string]any{
		"name": "Toco", "consumption_km_l": 4.5, "tank_liters": 275, "plate": "DEF-5678",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[fleet.Vehicle](t, w)
	assert.Equal(t, fleet.StatusAvailable, created.Status)

	w = doRequest(r, http.MethodGet, "/api/v1/trucks", nil)
	assert.Len(t, decode[[]fleet.Vehicle](t, w), 3)

	w = doRequest(r, http.MethodDelete, "/api/v1/trucks/"+string(created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodDelete, "/api/v1/trucks/"+string(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/trucks", map[string]any{
		"name": "Toco", "consumption_km_l": 0, "tank_liters": 275, "plate": "DEF-5678",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/drivers", map[string]any{"name": "Maria Lima", "license": "1122334455"})
	require.Equal(t, http.StatusCreated, w.Code)
	d := decode[fleet.Driver](t, w)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Maria+Lima&background=random", d.PhotoURL)

	w = doRequest(r, http.MethodPost, "/api/v1/drivers", map[string]any{"name": "Maria Lima", "license": "12"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodDelete, "/api/v1/drivers/mot-02", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodGet, "/api/v1/drivers", nil)
	assert.Len(t, decode[[]fleet.Driver](t, w), 2)
}
