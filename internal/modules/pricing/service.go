// README: Quote service resolves places, routes them and prices the trip.
package pricing

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"freightdesk/internal/maps"
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/types"
)

var ErrBadRequest = types.ErrBadRequest

type VehicleSource interface {
	GetVehicle(ctx context.Context, id types.ID) (fleet.Vehicle, error)
}

type Service struct {
	vehicles VehicleSource
	geo      maps.GeoResolver
	router   maps.RoadRouter
	costs    CostParameters
	log      *zap.Logger
}

// NewService refuses cost parameters that would make prices undefined.
func NewService(vehicles VehicleSource, geo maps.GeoResolver, router maps.RoadRouter, costs CostParameters, log *zap.Logger) (*Service, error) {
	if err := costs.Validate(); err != nil {
		return nil, err
	}
	return &Service{vehicles: vehicles, geo: geo, router: router, costs: costs, log: log}, nil
}

type QuoteCommand struct {
	Origin            string
	Destination       string
	VehicleID         types.ID
	RoundTrip         bool
	FuelPriceOverride *float64
	PerDiemOverride   *float64
}

func (s *Service) Costs() CostParameters {
	return s.costs
}

func (s *Service) Quote(ctx context.Context, cmd QuoteCommand) (Quote, error) {
	if strings.TrimSpace(cmd.Origin) == "" || strings.TrimSpace(cmd.Destination) == "" || cmd.VehicleID == "" {
		return Quote{}, fmt.Errorf("%w: origin, destination and vehicle_id are required", ErrBadRequest)
	}
	if cmd.FuelPriceOverride != nil && *cmd.FuelPriceOverride < 0 {
		return Quote{}, fmt.Errorf("%w: fuel price override must not be negative", ErrBadRequest)
	}
	if cmd.PerDiemOverride != nil && *cmd.PerDiemOverride < 0 {
		return Quote{}, fmt.Errorf("%w: per-diem override must not be negative", ErrBadRequest)
	}

	vehicle, err := s.vehicles.GetVehicle(ctx, cmd.VehicleID)
	if err != nil {
		return Quote{}, err
	}

	var from, to types.Point
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		from, err = s.geo.Resolve(gctx, cmd.Origin)
		return err
	})
	g.Go(func() error {
		var err error
		to, err = s.geo.Resolve(gctx, cmd.Destination)
		return err
	})
	if err := g.Wait(); err != nil {
		return Quote{}, err
	}

	route := s.routeOrEstimate(ctx, from, to)

	q, err := ComputeQuote(QuoteInput{
		DistanceKm:        route.DistanceKm,
		TravelHours:       route.DurationHours,
		RoundTrip:         cmd.RoundTrip,
		Vehicle:           vehicle,
		Costs:             s.costs,
		FuelPriceOverride: cmd.FuelPriceOverride,
		PerDiemOverride:   cmd.PerDiemOverride,
	})
	if err != nil {
		return Quote{}, err
	}
	q.Geometry = route.Geometry
	q.Origin = from
	q.Destination = to
	q.Vehicle = vehicle
	return q, nil
}

// routeOrEstimate never fails: without a routed answer it estimates road
// distance from the great-circle distance and drives it at FallbackSpeedKmh.
func (s *Service) routeOrEstimate(ctx context.Context, from, to types.Point) maps.Route {
	if s.router != nil {
		route, err := s.router.Route(ctx, from, to)
		if err == nil {
			return route
		}
		s.log.Warn("road router unavailable, using great-circle estimate",
			zap.Stringer("from", from), zap.Stringer("to", to), zap.Error(err))
	}
	return FallbackRoute(from, to)
}

func FallbackRoute(from, to types.Point) maps.Route {
	distance := maps.HaversineKm(from, to) * RoadFactor
	return maps.Route{
		DistanceKm:    distance,
		DurationHours: distance / FallbackSpeedKmh,
	}
}
