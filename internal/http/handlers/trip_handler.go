// README: Trip board and booking handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freightdesk/internal/modules/booking"
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/types"
)

type TripHandler struct {
	fleet   *fleet.Service
	booking *booking.Service
}

func NewTripHandler(fleetSvc *fleet.Service, bookingSvc *booking.Service) *TripHandler {
	return &TripHandler{fleet: fleetSvc, booking: bookingSvc}
}

type bookTripRequest struct {
	Origin       string    `json:"origin" binding:"required"`
	Destination  string    `json:"destination" binding:"required"`
	DistanceKm   float64   `json:"distance_km"`
	FinalPrice   float64   `json:"final_price"`
	Profit       float64   `json:"profit"`
	DriverCost   float64   `json:"driver_cost"`
	VehicleID    string    `json:"vehicle_id" binding:"required"`
	DriverID     string    `json:"driver_id" binding:"required"`
	StartAt      time.Time `json:"start_at" binding:"required"`
	PlannedStops int       `json:"planned_stops"`
}

type bookTripResponse struct {
	Message      string     `json:"message"`
	ID           types.ID   `json:"id"`
	EstimatedEnd time.Time  `json:"estimated_end"`
	Trip         fleet.Trip `json:"trip"`
}

func (h *TripHandler) List(c *gin.Context) {
	limit := fleet.DefaultTripLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	trips, err := h.fleet.ListTrips(c.Request.Context(), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, trips)
}

func (h *TripHandler) Book(c *gin.Context) {
	var req bookTripRequest
	if !bindJSON(c, &req) {
		return
	}
	trip, err := h.booking.BookTrip(c.Request.Context(), booking.BookCommand{
		Origin:       req.Origin,
		Destination:  req.Destination,
		DistanceKm:   req.DistanceKm,
		FinalPrice:   req.FinalPrice,
		Profit:       req.Profit,
		DriverCost:   req.DriverCost,
		VehicleID:    types.ID(req.VehicleID),
		DriverID:     types.ID(req.DriverID),
		StartAt:      req.StartAt,
		PlannedStops: req.PlannedStops,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, bookTripResponse{
		Message:      "trip booked",
		ID:           trip.ID,
		EstimatedEnd: trip.EndAt,
		Trip:         trip,
	})
}
