// README: Quote handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightdesk/internal/modules/pricing"
	"freightdesk/internal/types"
)

type QuoteHandler struct {
	pricing *pricing.Service
}

func NewQuoteHandler(pricingSvc *pricing.Service) *QuoteHandler {
	return &QuoteHandler{pricing: pricingSvc}
}

type quoteRequest struct {
	Origin            string   `json:"origin" binding:"required"`
	Destination       string   `json:"destination" binding:"required"`
	VehicleID         string   `json:"vehicle_id" binding:"required"`
	RoundTrip         bool     `json:"round_trip"`
	FuelPriceOverride *float64 `json:"fuel_price_override"`
	PerDiemOverride   *float64 `json:"per_diem_override"`
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.pricing.Quote(c.Request.Context(), pricing.QuoteCommand{
		Origin:            req.Origin,
		Destination:       req.Destination,
		VehicleID:         types.ID(req.VehicleID),
		RoundTrip:         req.RoundTrip,
		FuelPriceOverride: req.FuelPriceOverride,
		PerDiemOverride:   req.PerDiemOverride,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}
