// README: Pure quote arithmetic (distance, fuel, driver cost, margin).
package pricing

import (
	"errors"
	"fmt"
	"math"

	"freightdesk/internal/types"
)

const (
	// DrivingHoursPerDay is the length of one working driving day.
	DrivingHoursPerDay = 8.0
	// FallbackSpeedKmh is the average speed assumed without a routed duration.
	FallbackSpeedKmh = 70.0
	// RoadFactor converts great-circle distance into an estimated road distance.
	RoadFactor = 1.2
)

var (
	ErrInvalidConfiguration = errors.New("invalid pricing configuration")
	ErrInvalidMargin        = fmt.Errorf("%w: profit margin must be in [0, 1)", ErrInvalidConfiguration)
	ErrInvalidWorkingDays   = fmt.Errorf("%w: working days per month must be positive", ErrInvalidConfiguration)
	ErrInvalidCosts         = fmt.Errorf("%w: costs must not be negative and fuel price must be positive", ErrInvalidConfiguration)
	ErrInvalidVehicle       = errors.New("vehicle consumption and tank capacity must be positive")
)

// TripDays counts 8-hour driving days, at least one.
func TripDays(travelHours float64) int {
	days := int(math.Ceil(travelHours / DrivingHoursPerDay))
	if days < 1 {
		return 1
	}
	return days
}

// RefuelStops counts stops needed beyond the full tank at departure.
func RefuelStops(fuelLiters, tankLiters float64) int {
	if fuelLiters <= tankLiters {
		return 0
	}
	return int(math.Ceil((fuelLiters - tankLiters) / tankLiters))
}

// ComputeQuote turns a distance, duration and vehicle into a priced quote.
// Amounts and distance are rounded to cents and hours to one decimal only on
// the way out.
func ComputeQuote(in QuoteInput) (Quote, error) {
	if err := in.Costs.Validate(); err != nil {
		return Quote{}, err
	}
	if in.Vehicle.Consumption <= 0 || in.Vehicle.TankLiters <= 0 {
		return Quote{}, ErrInvalidVehicle
	}

	distance, hours := in.DistanceKm, in.TravelHours
	if in.RoundTrip {
		distance *= 2
		hours *= 2
	}

	days := TripDays(hours)
	liters := distance / in.Vehicle.Consumption
	stops := RefuelStops(liters, in.Vehicle.TankLiters)

	fuelPrice := in.Costs.FuelPrice
	if in.FuelPriceOverride != nil && *in.FuelPriceOverride > 0 {
		fuelPrice = *in.FuelPriceOverride
	}
	perDiem := in.Costs.PerDiem
	if in.PerDiemOverride != nil {
		perDiem = *in.PerDiemOverride
	}

	fuelCost := liters * fuelPrice
	salaryShare := in.Costs.MonthlySalary / float64(in.Costs.WorkingDaysInMonth) * float64(days)
	perDiemCost := perDiem * float64(days)
	driverTotal := salaryShare + perDiemCost
	totalCost := fuelCost + driverTotal
	salePrice := totalCost / (1 - in.Costs.ProfitMargin)
	profit := salePrice - totalCost

	return Quote{
		DistanceKm:  types.Round2(distance),
		TravelHours: types.Round1(hours),
		TripDays:    days,
		SalePrice:   types.Round2(salePrice),
		Breakdown: Breakdown{
			FuelCost:          types.Round2(fuelCost),
			FuelLiters:        types.Round2(liters),
			RefuelStops:       stops,
			DriverSalaryCost:  types.Round2(salaryShare),
			DriverPerDiemCost: types.Round2(perDiemCost),
			DriverCostTotal:   types.Round2(driverTotal),
			TotalCost:         types.Round2(totalCost),
			Profit:            types.Round2(profit),
		},
	}, nil
}
