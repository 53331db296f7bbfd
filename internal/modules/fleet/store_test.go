package fleet

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/internal/types"
)

// setupTestStore needs a database migrated with the files under migrations/.
func setupTestStore(t *testing.T) *PGStore {
	t.Helper()
	dsn := os.Getenv("FREIGHT_TEST_DSN")
	if dsn == "" {
		t.Skip("FREIGHT_TEST_DSN not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPGStore(pool)
}

func TestPGStore_VehicleAndTrip(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	v := Vehicle{ID: types.NewID(), Name: "Test Truck", Consumption: 3.2, TankLiters: 300, Plate: "TST-0001", Status: StatusAvailable}
	require.NoError(t, s.CreateVehicle(ctx, v))
	t.Cleanup(func() { _ = s.DeleteVehicle(context.Background(), v.ID) })

	got, err := s.GetVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	require.NoError(t, s.SetVehicleStatus(ctx, v.ID, StatusBooked))
	got, err = s.GetVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, got.Status)

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	trip := Trip{
		ID: types.NewID(), Origin: "A", Destination: "B", DistanceKm: 100,
		VehicleID: v.ID, DriverID: "mot-01", StartAt: start, EndAt: start.Add(24 * time.Hour),
		DurationDays: 1, Status: TripScheduled,
	}
	require.NoError(t, s.InsertTrip(ctx, trip))

	trips, err := s.ListTrips(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, trips)
	assert.Equal(t, trip.ID, trips[len(trips)-1].ID)
}

func TestPGStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	_, err := s.GetDriver(ctx, "missing!")
	assert.ErrorIs(t, err, ErrDriverNotFound)
	assert.ErrorIs(t, s.DeleteVehicle(ctx, "missing!"), ErrVehicleNotFound)
}
