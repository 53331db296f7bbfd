// README: Fleet service validates catalog changes and builds the trip board.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"freightdesk/internal/types"
)

const (
	DefaultTripLimit = 20
	unknownName      = "Unknown"
	unknownPlate     = "---"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

type CreateVehicleCommand struct {
	Name        string
	Consumption float64
	TankLiters  float64
	Plate       string
}

type CreateDriverCommand struct {
	Name     string
	License  string
	PhotoURL string
}

func (s *Service) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	return s.repo.ListVehicles(ctx)
}

func (s *Service) GetVehicle(ctx context.Context, id types.ID) (Vehicle, error) {
	return s.repo.GetVehicle(ctx, id)
}

func (s *Service) CreateVehicle(ctx context.Context, cmd CreateVehicleCommand) (Vehicle, error) {
	name := strings.TrimSpace(cmd.Name)
	switch {
	case len([]rune(name)) < 2:
		return Vehicle{}, fmt.Errorf("%w: name must have at least 2 characters", ErrBadRequest)
	case cmd.Consumption <= 0:
		return Vehicle{}, fmt.Errorf("%w: consumption must be positive", ErrBadRequest)
	case cmd.TankLiters <= 0:
		return Vehicle{}, fmt.Errorf("%w: tank capacity must be positive", ErrBadRequest)
	case strings.TrimSpace(cmd.Plate) == "":
		return Vehicle{}, fmt.Errorf("%w: plate is required", ErrBadRequest)
	}

	v := Vehicle{
		ID:          types.NewID(),
		Name:        name,
		Consumption: cmd.Consumption,
		TankLiters:  cmd.TankLiters,
		Plate:       strings.TrimSpace(cmd.Plate),
		Status:      StatusAvailable,
	}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return Vehicle{}, err
	}
	s.log.Info("vehicle created", zap.String("vehicle_id", string(v.ID)), zap.String("plate", v.Plate))
	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id types.ID) error {
	if err := s.repo.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	s.log.Info("vehicle deleted", zap.String("vehicle_id", string(id)))
	return nil
}

func (s *Service) ListDrivers(ctx context.Context) ([]Driver, error) {
	return s.repo.ListDrivers(ctx)
}

func (s *Service) CreateDriver(ctx context.Context, cmd CreateDriverCommand) (Driver, error) {
	name := strings.TrimSpace(cmd.Name)
	license := strings.TrimSpace(cmd.License)
	if len([]rune(name)) < 2 {
		return Driver{}, fmt.Errorf("%w: name must have at least 2 characters", ErrBadRequest)
	}
	if len([]rune(license)) < 5 {
		return Driver{}, fmt.Errorf("%w: license must have at least 5 characters", ErrBadRequest)
	}

	photo := strings.TrimSpace(cmd.PhotoURL)
	if photo == "" {
		photo = DefaultAvatarURL(name)
	}
	d := Driver{
		ID:       types.NewID(),
		Name:     name,
		License:  license,
		PhotoURL: photo,
		Status:   StatusAvailable,
	}
	if err := s.repo.CreateDriver(ctx, d); err != nil {
		return Driver{}, err
	}
	s.log.Info("driver created", zap.String("driver_id", string(d.ID)))
	return d, nil
}

func (s *Service) DeleteDriver(ctx context.Context, id types.ID) error {
	if err := s.repo.DeleteDriver(ctx, id); err != nil {
		return err
	}
	s.log.Info("driver deleted", zap.String("driver_id", string(id)))
	return nil
}

// ListTrips returns the most recent trips first. Trips whose vehicle or
// driver has since been deleted are shown with placeholder names.
func (s *Service) ListTrips(ctx context.Context, limit int) ([]TripView, error) {
	if limit <= 0 {
		limit = DefaultTripLimit
	}
	trips, err := s.repo.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].StartAt.After(trips[j].StartAt)
	})
	if len(trips) > limit {
		trips = trips[:limit]
	}

	out := make([]TripView, 0, len(trips))
	for _, t := range trips {
		view := TripView{
			Trip:         t,
			DriverName:   unknownName,
			VehicleName:  unknownName,
			VehiclePlate: unknownPlate,
		}
		d, err := s.repo.GetDriver(ctx, t.DriverID)
		switch {
		case err == nil:
			view.DriverName = d.Name
			view.DriverPhoto = d.PhotoURL
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
		v, err := s.repo.GetVehicle(ctx, t.VehicleID)
		switch {
		case err == nil:
			view.VehicleName = v.Name
			view.VehiclePlate = v.Plate
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

func DefaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
