// README: Cost parameters and quote result shapes for freight pricing.
package pricing

import (
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/types"
)

// CostParameters are the company-wide inputs of every quote. ProfitMargin is
// a fraction of the sale price, not a markup over cost.
type CostParameters struct {
	FuelPrice          float64
	MonthlySalary      float64
	PerDiem            float64
	WorkingDaysInMonth int
	ProfitMargin       float64
}

func (p CostParameters) Validate() error {
	if p.ProfitMargin < 0 || p.ProfitMargin >= 1 {
		return ErrInvalidMargin
	}
	if p.WorkingDaysInMonth <= 0 {
		return ErrInvalidWorkingDays
	}
	if p.FuelPrice <= 0 || p.MonthlySalary < 0 || p.PerDiem < 0 {
		return ErrInvalidCosts
	}
	return nil
}

// QuoteInput feeds ComputeQuote. A nil override keeps the configured value;
// a fuel price override of zero is treated as absent.
type QuoteInput struct {
	DistanceKm        float64
	TravelHours       float64
	RoundTrip         bool
	Vehicle           fleet.Vehicle
	Costs             CostParameters
	FuelPriceOverride *float64
	PerDiemOverride   *float64
}

type Breakdown struct {
	FuelCost          float64 `json:"fuel_cost"`
	FuelLiters        float64 `json:"fuel_liters"`
	RefuelStops       int     `json:"refuel_stops"`
	DriverSalaryCost  float64 `json:"driver_salary_cost"`
	DriverPerDiemCost float64 `json:"driver_per_diem_cost"`
	DriverCostTotal   float64 `json:"driver_cost_total"`
	TotalCost         float64 `json:"total_cost"`
	Profit            float64 `json:"profit"`
}

type Quote struct {
	DistanceKm  float64       `json:"distance_km"`
	TravelHours float64       `json:"travel_hours"`
	TripDays    int           `json:"trip_days"`
	SalePrice   float64       `json:"sale_price"`
	Breakdown   Breakdown     `json:"breakdown"`
	Geometry    []types.Point `json:"route_geometry"`
	Origin      types.Point   `json:"origin_coords"`
	Destination types.Point   `json:"destination_coords"`
	Vehicle     fleet.Vehicle `json:"vehicle"`
}
