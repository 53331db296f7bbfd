// README: Fleet store backed by PostgreSQL.
package fleet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freightdesk/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) GetVehicle(ctx context.Context, id types.ID) (Vehicle, error) {
	var v Vehicle
	err := s.db.QueryRow(ctx, `
        SELECT id, name, consumption_km_l, tank_liters, plate, status
        FROM vehicles
        WHERE id = $1`, string(id),
	).Scan(&v.ID, &v.Name, &v.Consumption, &v.TankLiters, &v.Plate, &v.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, ErrVehicleNotFound
	}
	if err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

func (s *PGStore) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, consumption_km_l, tank_liters, plate, status
        FROM vehicles
        ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Vehicle{}
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Consumption, &v.TankLiters, &v.Plate, &v.Status); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PGStore) CreateVehicle(ctx context.Context, v Vehicle) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO vehicles (id, name, consumption_km_l, tank_liters, plate, status)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		string(v.ID), v.Name, v.Consumption, v.TankLiters, v.Plate, string(v.Status),
	)
	return err
}

func (s *PGStore) DeleteVehicle(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (s *PGStore) SetVehicleStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`, string(status), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (s *PGStore) GetDriver(ctx context.Context, id types.ID) (Driver, error) {
	var d Driver
	err := s.db.QueryRow(ctx, `
        SELECT id, name, license, photo_url, status
        FROM drivers
        WHERE id = $1`, string(id),
	).Scan(&d.ID, &d.Name, &d.License, &d.PhotoURL, &d.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Driver{}, ErrDriverNotFound
	}
	if err != nil {
		return Driver{}, err
	}
	return d, nil
}

func (s *PGStore) ListDrivers(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, license, photo_url, status
        FROM drivers
        ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Driver{}
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.License, &d.PhotoURL, &d.Status); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PGStore) CreateDriver(ctx context.Context, d Driver) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO drivers (id, name, license, photo_url, status)
        VALUES ($1, $2, $3, $4, $5)`,
		string(d.ID), d.Name, d.License, d.PhotoURL, string(d.Status),
	)
	return err
}

func (s *PGStore) DeleteDriver(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDriverNotFound
	}
	return nil
}

func (s *PGStore) SetDriverStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `UPDATE drivers SET status = $1 WHERE id = $2`, string(status), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDriverNotFound
	}
	return nil
}

// ListTrips orders by seq so callers see insertion order.
func (s *PGStore) ListTrips(ctx context.Context) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, origin, destination, distance_km, final_price, profit, driver_cost,
               vehicle_id, driver_id, start_at, end_at, duration_days, planned_stops, status
        FROM trips
        ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Trip{}
	for rows.Next() {
		var t Trip
		if err := rows.Scan(
			&t.ID, &t.Origin, &t.Destination, &t.DistanceKm, &t.FinalPrice, &t.Profit, &t.DriverCost,
			&t.VehicleID, &t.DriverID, &t.StartAt, &t.EndAt, &t.DurationDays, &t.PlannedStops, &t.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PGStore) InsertTrip(ctx context.Context, t Trip) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO trips (
            id, origin, destination, distance_km, final_price, profit, driver_cost,
            vehicle_id, driver_id, start_at, end_at, duration_days, planned_stops, status
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7,
            $8, $9, $10, $11, $12, $13, $14
        )`,
		string(t.ID), t.Origin, t.Destination, t.DistanceKm, t.FinalPrice, t.Profit, t.DriverCost,
		string(t.VehicleID), string(t.DriverID), t.StartAt, t.EndAt, t.DurationDays, t.PlannedStops, string(t.Status),
	)
	return err
}
