// README: In-memory fleet store; default when no database is configured.
package fleet

import (
	"context"
	"sync"

	"freightdesk/internal/types"
)

type MemoryStore struct {
	mu           sync.RWMutex
	vehicles     map[types.ID]Vehicle
	vehicleOrder []types.ID
	drivers      map[types.ID]Driver
	driverOrder  []types.ID
	trips        []Trip
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vehicles: make(map[types.ID]Vehicle),
		drivers:  make(map[types.ID]Driver),
	}
}

func (s *MemoryStore) GetVehicle(_ context.Context, id types.ID) (Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vehicles[id]
	if !ok {
		return Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}

func (s *MemoryStore) ListVehicles(_ context.Context) ([]Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Vehicle, 0, len(s.vehicleOrder))
	for _, id := range s.vehicleOrder {
		out = append(out, s.vehicles[id])
	}
	return out, nil
}

func (s *MemoryStore) CreateVehicle(_ context.Context, v Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[v.ID]; !ok {
		s.vehicleOrder = append(s.vehicleOrder, v.ID)
	}
	s.vehicles[v.ID] = v
	return nil
}

func (s *MemoryStore) DeleteVehicle(_ context.Context, id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[id]; !ok {
		return ErrVehicleNotFound
	}
	delete(s.vehicles, id)
	s.vehicleOrder = removeID(s.vehicleOrder, id)
	return nil
}

func (s *MemoryStore) SetVehicleStatus(_ context.Context, id types.ID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return ErrVehicleNotFound
	}
	v.Status = status
	s.vehicles[id] = v
	return nil
}

func (s *MemoryStore) GetDriver(_ context.Context, id types.ID) (Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return Driver{}, ErrDriverNotFound
	}
	return d, nil
}

func (s *MemoryStore) ListDrivers(_ context.Context) ([]Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Driver, 0, len(s.driverOrder))
	for _, id := range s.driverOrder {
		out = append(out, s.drivers[id])
	}
	return out, nil
}

func (s *MemoryStore) CreateDriver(_ context.Context, d Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[d.ID]; !ok {
		s.driverOrder = append(s.driverOrder, d.ID)
	}
	s.drivers[d.ID] = d
	return nil
}

func (s *MemoryStore) DeleteDriver(_ context.Context, id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[id]; !ok {
		return ErrDriverNotFound
	}
	delete(s.drivers, id)
	s.driverOrder = removeID(s.driverOrder, id)
	return nil
}

func (s *MemoryStore) SetDriverStatus(_ context.Context, id types.ID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return ErrDriverNotFound
	}
	d.Status = status
	s.drivers[id] = d
	return nil
}

func (s *MemoryStore) ListTrips(_ context.Context) ([]Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Trip, len(s.trips))
	copy(out, s.trips)
	return out, nil
}

func (s *MemoryStore) InsertTrip(_ context.Context, t Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = append(s.trips, t)
	return nil
}

func removeID(ids []types.ID, id types.ID) []types.ID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
