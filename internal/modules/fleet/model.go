// README: Fleet catalog entities (vehicles, drivers) and booked trips.
package fleet

import (
	"time"

	"freightdesk/internal/types"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
)

// Vehicle consumption is in km per liter; tank capacity in liters.
type Vehicle struct {
	ID          types.ID `json:"id"`
	Name        string   `json:"name"`
	Consumption float64  `json:"consumption_km_l"`
	TankLiters  float64  `json:"tank_liters"`
	Plate       string   `json:"plate"`
	Status      Status   `json:"status"`
}

type Driver struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	License  string   `json:"license"`
	PhotoURL string   `json:"photo_url"`
	Status   Status   `json:"status"`
}

// Trip is a confirmed booking. Its [StartAt, EndAt) window blocks both the
// vehicle and the driver.
type Trip struct {
	ID           types.ID   `json:"id"`
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	DistanceKm   float64    `json:"distance_km"`
	FinalPrice   float64    `json:"final_price"`
	Profit       float64    `json:"profit"`
	DriverCost   float64    `json:"driver_cost"`
	VehicleID    types.ID   `json:"vehicle_id"`
	DriverID     types.ID   `json:"driver_id"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	DurationDays int        `json:"duration_days"`
	PlannedStops int        `json:"planned_stops"`
	Status       TripStatus `json:"status"`
}

// TripView is a trip joined with display data of its vehicle and driver.
type TripView struct {
	Trip
	DriverName   string `json:"driver_name"`
	DriverPhoto  string `json:"driver_photo"`
	VehicleName  string `json:"vehicle_name"`
	VehiclePlate string `json:"vehicle_plate"`
}
