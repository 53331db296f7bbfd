// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"freightdesk/internal/maps"
	"freightdesk/internal/modules/booking"
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/modules/pricing"
	"freightdesk/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

type conflictResponse struct {
	Error       string    `json:"error"`
	Resource    string    `json:"resource"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module errors to HTTP statuses. Unclassified errors
// are attached to the context for the logging middleware and hidden from the
// client.
func writeServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		writeJSON(c, http.StatusConflict, conflictResponse{
			Error:       "conflict: " + conflict.Error(),
			Resource:    string(conflict.Kind),
			WindowStart: conflict.Start,
			WindowEnd:   conflict.End,
		})
	case errors.Is(err, types.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, fleet.ErrNotFound), errors.Is(err, maps.ErrPlaceNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, pricing.ErrInvalidVehicle):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
