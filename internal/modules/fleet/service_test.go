package fleet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freightdesk/internal/types"
)

func newSeededService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	require.NoError(t, Seed(context.Background(), store))
	return NewService(store, zap.NewNop()), store
}

func TestService_CreateVehicleValidation(t *testing.T) {
	svc, _ := newSeededService(t)
	cases := []struct {
		name string
		cmd  CreateVehicleCommand
	}{
		{"short name", CreateVehicleCommand{Name: "X", Consumption: 3, TankLiters: 100, Plate: "AAA-0001"}},
		{"zero consumption", CreateVehicleCommand{Name: "Truck", Consumption: 0, TankLiters: 100, Plate: "AAA-0001"}},
		{"negative tank", CreateVehicleCommand{Name: "Truck", Consumption: 3, TankLiters: -1, Plate: "AAA-0001"}},
		{"missing plate", CreateVehicleCommand{Name: "Truck", Consumption: 3, TankLiters: 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateVehicle(context.Background(), tc.cmd)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
}

func TestService_CreateVehicle(t *testing.T) {
	svc, _ := newSeededService(t)
	v, err := svc.CreateVehicle(context.Background(), CreateVehicleCommand{
		Name: "Toco", Consumption: 4.5, TankLiters: 275, Plate: "DEF-5678",
	})
	require.NoError(t, err)
	assert.Len(t, string(v.ID), 8)
	assert.Equal(t, StatusAvailable, v.Status)

	list, err := svc.ListVehicles(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestService_CreateDriverDefaultsAvatar(t *testing.T) {
	svc, _ := newSeededService(t)
	d, err := svc.CreateDriver(context.Background(), CreateDriverCommand{Name: "João Souza", License: "55555"})
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, d.Status)
	assert.Contains(t, d.PhotoURL, "https://ui-avatars.com/api/?name=")
	assert.Contains(t, d.PhotoURL, "+Souza&background=random")

	_, err = svc.CreateDriver(context.Background(), CreateDriverCommand{Name: "Jo", License: "123"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestService_DeleteUnknown(t *testing.T) {
	svc, _ := newSeededService(t)
	assert.ErrorIs(t, svc.DeleteVehicle(context.Background(), "nope"), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteDriver(context.Background(), "nope"), ErrNotFound)
}

func TestService_ListTripsEnrichesAndSorts(t *testing.T) {
	ctx := context.Background()
	svc, store := newSeededService(t)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertTrip(ctx, Trip{ID: "old", VehicleID: "vuc-01", DriverID: "mot-01", StartAt: base}))
	require.NoError(t, store.InsertTrip(ctx, Trip{ID: "new", VehicleID: "gone", DriverID: "gone", StartAt: base.Add(48 * time.Hour)}))

	views, err := svc.ListTrips(ctx, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "new", string(views[0].ID))
	assert.Equal(t, "Unknown", views[0].DriverName)
	assert.Equal(t, "", views[0].DriverPhoto)
	assert.Equal(t, "Unknown", views[0].VehicleName)
	assert.Equal(t, "---", views[0].VehiclePlate)

	assert.Equal(t, "old", string(views[1].ID))
	assert.Equal(t, "Carlos Silva", views[1].DriverName)
	assert.Equal(t, "ABC-1234", views[1].VehiclePlate)
}

func TestService_ListTripsLimit(t *testing.T) {
	ctx := context.Background()
	svc, store := newSeededService(t)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		require.NoError(t, store.InsertTrip(ctx, Trip{
			ID:      types.ID(fmt.Sprintf("t%02d", i)),
			StartAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	views, err := svc.ListTrips(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, views, DefaultTripLimit)
	assert.Equal(t, "t24", string(views[0].ID))

	views, err = svc.ListTrips(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, views, 5)
}
