// README: Vehicle and driver catalog handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/types"
)

type VehicleHandler struct {
	fleet *fleet.Service
}

func NewVehicleHandler(fleetSvc *fleet.Service) *VehicleHandler {
	return &VehicleHandler{fleet: fleetSvc}
}

type createVehicleRequest struct {
	Name        string  `json:"name" binding:"required"`
	Consumption float64 `json:"consumption_km_l"`
	TankLiters  float64 `json:"tank_liters"`
	Plate       string  `json:"plate" binding:"required"`
}

func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.fleet.ListVehicles(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req createVehicleRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.fleet.CreateVehicle(c.Request.Context(), fleet.CreateVehicleCommand{
		Name:        req.Name,
		Consumption: req.Consumption,
		TankLiters:  req.TankLiters,
		Plate:       req.Plate,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, v)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.fleet.DeleteVehicle(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, messageResponse{Message: "removed"})
}

type DriverHandler struct {
	fleet *fleet.Service
}

func NewDriverHandler(fleetSvc *fleet.Service) *DriverHandler {
	return &DriverHandler{fleet: fleetSvc}
}

type createDriverRequest struct {
	Name     string `json:"name" binding:"required"`
	License  string `json:"license" binding:"required"`
	PhotoURL string `json:"photo_url"`
}

func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.fleet.ListDrivers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, drivers)
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req createDriverRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.fleet.CreateDriver(c.Request.Context(), fleet.CreateDriverCommand{
		Name:     req.Name,
		License:  req.License,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.fleet.DeleteDriver(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, messageResponse{Message: "removed"})
}
