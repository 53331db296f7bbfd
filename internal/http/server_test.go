package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freightdesk/internal/maps"
	"freightdesk/internal/modules/booking"
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/modules/pricing"
	"freightdesk/internal/types"
)

type noPlaces struct{}

func (noPlaces) Resolve(context.Context, string) (types.Point, error) {
	return types.Point{}, maps.ErrPlaceNotFound
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := fleet.NewMemoryStore()
	require.NoError(t, fleet.Seed(context.Background(), store))
	log := zap.NewNop()
	pricingSvc, err := pricing.NewService(store, noPlaces{}, nil, pricing.CostParameters{
		FuelPrice: 6.89, MonthlySalary: 2500, PerDiem: 150, WorkingDaysInMonth: 22, ProfitMargin: 0.3,
	}, log)
	require.NoError(t, err)

	return NewServer(ServerDeps{
		Fleet:   fleet.NewService(store, log),
		Pricing: pricingSvc,
		Booking: booking.NewService(store, nil, log),
		Logger:  log,
	}).Routes()
}

func TestRoutes_Health(t *testing.T) {
	h := newTestServer(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRoutes_CORS(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trucks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	pre := httptest.NewRequest(http.MethodOptions, "/api/v1/trips/book", nil)
	pre.Header.Set("Origin", "http://localhost:5173")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, pre)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRoutes_QuoteUnknownPlace(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote",
		strings.NewReader(`{"origin":"Nowhere","destination":"Elsewhere","vehicle_id":"vuc-01"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
