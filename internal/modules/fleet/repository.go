// README: Repository contract shared by the in-memory and Postgres fleet stores.
package fleet

import (
	"context"
	"errors"
	"fmt"

	"freightdesk/internal/types"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVehicleNotFound = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrDriverNotFound  = fmt.Errorf("driver %w", ErrNotFound)
	ErrBadRequest      = types.ErrBadRequest
)

// Repository is plain storage; it enforces no business rules.
// ListTrips returns trips in insertion order.
type Repository interface {
	GetVehicle(ctx context.Context, id types.ID) (Vehicle, error)
	ListVehicles(ctx context.Context) ([]Vehicle, error)
	CreateVehicle(ctx context.Context, v Vehicle) error
	DeleteVehicle(ctx context.Context, id types.ID) error
	SetVehicleStatus(ctx context.Context, id types.ID, status Status) error

	GetDriver(ctx context.Context, id types.ID) (Driver, error)
	ListDrivers(ctx context.Context) ([]Driver, error)
	CreateDriver(ctx context.Context, d Driver) error
	DeleteDriver(ctx context.Context, id types.ID) error
	SetDriverStatus(ctx context.Context, id types.ID, status Status) error

	ListTrips(ctx context.Context) ([]Trip, error)
	InsertTrip(ctx context.Context, t Trip) error
}
