package handlers

import (
	"net/http"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/interfaces/http/response"
	"autoserve.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VehicleHandler handles vehicle endpoints
type VehicleHandler struct {
	vehicleUsecase *usecases.VehicleUsecase
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleUsecase *usecases.VehicleUsecase) *VehicleHandler {
	return &VehicleHandler{vehicleUsecase: vehicleUsecase}
}

// RegisterVehicle attaches a vehicle to a customer
// POST /api/v1/vehicles
func (h *VehicleHandler) RegisterVehicle(c *gin.Context) {
	var input entities.CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	vehicle, err := h.vehicleUsecase.RegisterVehicle(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, vehicle)
}

// GetVehicle fetches one vehicle
// GET /api/v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vehicle id"))
		return
	}

	vehicle, err := h.vehicleUsecase.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vehicle)
}

// ListByCustomer lists a customer's vehicles
// GET /api/v1/customers/:id/vehicles
func (h *VehicleHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid customer id"))
		return
	}

	vehicles, err := h.vehicleUsecase.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vehicles)
}

// RecordMileage records a new odometer reading
// PUT /api/v1/vehicles/:id/mileage
func (h *VehicleHandler) RecordMileage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vehicle id"))
		return
	}

	var input entities.UpdateMileageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	vehicle, err := h.vehicleUsecase.RecordMileage(c.Request.Context(), id, input.Mileage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, vehicle)
}

// DeleteVehicle soft-deletes a vehicle
// DELETE /api/v1/vehicles/:id
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vehicle id"))
		return
	}

	if err := h.vehicleUsecase.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "vehicle deleted"})
}
