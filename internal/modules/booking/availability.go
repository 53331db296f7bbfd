// README: Availability guard and the booking window derivation.
package booking

import (
	"time"

	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/modules/pricing"
	"freightdesk/internal/types"
)

// TripWindow derives the booked end from a flat average speed, independent of
// any routed duration the quote may have used.
func TripWindow(distanceKm float64, start time.Time) (time.Time, int) {
	days := pricing.TripDays(distanceKm / pricing.FallbackSpeedKmh)
	return start.Add(time.Duration(days) * 24 * time.Hour), days
}

// CheckAvailable scans trips in the given order and reports the first one held
// by resourceID whose [StartAt, EndAt) overlaps [start, end).
func CheckAvailable(resourceID types.ID, start, end time.Time, trips []fleet.Trip, kind ResourceKind) (bool, *ConflictError) {
	for _, t := range trips {
		holder := t.VehicleID
		if kind == KindDriver {
			holder = t.DriverID
		}
		if holder != resourceID {
			continue
		}
		if start.Before(t.EndAt) && end.After(t.StartAt) {
			return false, &ConflictError{Kind: kind, TripID: t.ID, Start: t.StartAt, End: t.EndAt}
		}
	}
	return true, nil
}
