// README: Booking commands and the conflict error returned by the availability check.
package booking

import (
	"errors"
	"fmt"
	"time"

	"freightdesk/internal/types"
)

var (
	ErrConflict   = errors.New("resource already booked")
	ErrBadRequest = types.ErrBadRequest
)

type ResourceKind string

const (
	KindVehicle ResourceKind = "vehicle"
	KindDriver  ResourceKind = "driver"
)

// windowLayout renders conflict bounds as day/month hour:minute, always in UTC.
const windowLayout = "02/01 15:04"

// ConflictError reports the first existing trip whose window overlaps the
// requested one.
type ConflictError struct {
	Kind   ResourceKind
	TripID types.ID
	Start  time.Time
	End    time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already booked from %s to %s",
		e.Kind, e.Start.UTC().Format(windowLayout), e.End.UTC().Format(windowLayout))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

type BookCommand struct {
	Origin       string
	Destination  string
	DistanceKm   float64
	FinalPrice   float64
	Profit       float64
	DriverCost   float64
	VehicleID    types.ID
	DriverID     types.ID
	StartAt      time.Time
	PlannedStops int
}
