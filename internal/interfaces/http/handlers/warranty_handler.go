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

// WarrantyHandler handles warranty coverage endpoints
type WarrantyHandler struct {
	warrantyUsecase *usecases.WarrantyUsecase
}

// NewWarrantyHandler creates a new warranty handler
func NewWarrantyHandler(warrantyUsecase *usecases.WarrantyUsecase) *WarrantyHandler {
	return &WarrantyHandler{warrantyUsecase: warrantyUsecase}
}

// RegisterWarranty attaches coverage to a vehicle
// POST /api/v1/warranties
func (h *WarrantyHandler) RegisterWarranty(c *gin.Context) {
	var input entities.CreateWarrantyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	warranty, err := h.warrantyUsecase.RegisterWarranty(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, warranty)
}

// ListByVehicle lists coverage attached to a vehicle
// GET /api/v1/vehicles/:id/warranties
func (h *WarrantyHandler) ListByVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vehicle id"))
		return
	}

	warranties, err := h.warrantyUsecase.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, warranties)
}

// CheckCoverage evaluates claim eligibility for a vehicle
// GET /api/v1/vehicles/:id/coverage
func (h *WarrantyHandler) CheckCoverage(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vehicle id"))
		return
	}

	result, err := h.warrantyUsecase.CheckCoverage(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CancelWarranty deactivates coverage
// DELETE /api/v1/warranties/:id
func (h *WarrantyHandler) CancelWarranty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid warranty id"))
		return
	}

	if err := h.warrantyUsecase.CancelWarranty(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "warranty cancelled"})
}
