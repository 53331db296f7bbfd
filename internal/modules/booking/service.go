// README: Booking service checks vehicle and driver availability before writing a trip.
package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/types"
)

// TripStore is the part of the fleet repository the booking flow touches.
type TripStore interface {
	GetVehicle(ctx context.Context, id types.ID) (fleet.Vehicle, error)
	GetDriver(ctx context.Context, id types.ID) (fleet.Driver, error)
	ListTrips(ctx context.Context) ([]fleet.Trip, error)
	InsertTrip(ctx context.Context, t fleet.Trip) error
	SetVehicleStatus(ctx context.Context, id types.ID, status fleet.Status) error
	SetDriverStatus(ctx context.Context, id types.ID, status fleet.Status) error
}

type Service struct {
	store     TripStore
	publisher EventPublisher
	log       *zap.Logger

	// mu serializes check-then-write within this process.
	mu sync.Mutex
}

// NewService accepts a nil publisher when events are disabled.
func NewService(store TripStore, publisher EventPublisher, log *zap.Logger) *Service {
	return &Service{store: store, publisher: publisher, log: log}
}

func (s *Service) BookTrip(ctx context.Context, cmd BookCommand) (fleet.Trip, error) {
	if err := validate(cmd); err != nil {
		return fleet.Trip{}, err
	}

	trip, err := s.reserve(ctx, cmd)
	if err != nil {
		return fleet.Trip{}, err
	}

	s.log.Info("trip booked",
		zap.String("trip_id", string(trip.ID)),
		zap.String("vehicle_id", string(trip.VehicleID)),
		zap.String("driver_id", string(trip.DriverID)),
		zap.Time("start_at", trip.StartAt),
		zap.Time("end_at", trip.EndAt),
	)
	s.publish(ctx, trip)
	return trip, nil
}

// reserve runs check-then-write under mu. Once the trip is inserted the
// booking stands; status flips after that only log on failure.
func (s *Service) reserve(ctx context.Context, cmd BookCommand) (fleet.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetVehicle(ctx, cmd.VehicleID); err != nil {
		return fleet.Trip{}, err
	}
	if _, err := s.store.GetDriver(ctx, cmd.DriverID); err != nil {
		return fleet.Trip{}, err
	}

	end, days := TripWindow(cmd.DistanceKm, cmd.StartAt)

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return fleet.Trip{}, err
	}
	if ok, conflict := CheckAvailable(cmd.VehicleID, cmd.StartAt, end, trips, KindVehicle); !ok {
		return fleet.Trip{}, conflict
	}
	if ok, conflict := CheckAvailable(cmd.DriverID, cmd.StartAt, end, trips, KindDriver); !ok {
		return fleet.Trip{}, conflict
	}

	trip := fleet.Trip{
		ID:           types.NewID(),
		Origin:       strings.TrimSpace(cmd.Origin),
		Destination:  strings.TrimSpace(cmd.Destination),
		DistanceKm:   cmd.DistanceKm,
		FinalPrice:   cmd.FinalPrice,
		Profit:       cmd.Profit,
		DriverCost:   cmd.DriverCost,
		VehicleID:    cmd.VehicleID,
		DriverID:     cmd.DriverID,
		StartAt:      cmd.StartAt,
		EndAt:        end,
		DurationDays: days,
		PlannedStops: cmd.PlannedStops,
		Status:       fleet.TripScheduled,
	}
	if err := s.store.InsertTrip(ctx, trip); err != nil {
		return fleet.Trip{}, err
	}
	if err := s.store.SetVehicleStatus(ctx, trip.VehicleID, fleet.StatusBooked); err != nil {
		s.log.Warn("mark vehicle booked failed", zap.String("trip_id", string(trip.ID)),
			zap.String("vehicle_id", string(trip.VehicleID)), zap.Error(err))
	}
	if err := s.store.SetDriverStatus(ctx, trip.DriverID, fleet.StatusBooked); err != nil {
		s.log.Warn("mark driver booked failed", zap.String("trip_id", string(trip.ID)),
			zap.String("driver_id", string(trip.DriverID)), zap.Error(err))
	}
	return trip, nil
}

func (s *Service) publish(ctx context.Context, trip fleet.Trip) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishTripBooked(ctx, trip); err != nil {
		s.log.Warn("publish trip booked event failed", zap.String("trip_id", string(trip.ID)), zap.Error(err))
	}
}

func validate(cmd BookCommand) error {
	switch {
	case cmd.VehicleID == "" || cmd.DriverID == "":
		return fmt.Errorf("%w: vehicle_id and driver_id are required", ErrBadRequest)
	case cmd.StartAt.IsZero():
		return fmt.Errorf("%w: start time is required", ErrBadRequest)
	case cmd.DistanceKm < 0:
		return fmt.Errorf("%w: distance must not be negative", ErrBadRequest)
	case cmd.PlannedStops < 0:
		return fmt.Errorf("%w: planned stops must not be negative", ErrBadRequest)
	}
	return nil
}
