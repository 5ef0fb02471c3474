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

// ServiceRecordHandler handles service work record endpoints
type ServiceRecordHandler struct {
	recordUsecase *usecases.ServiceRecordUsecase
}

// NewServiceRecordHandler creates a new service record handler
func NewServiceRecordHandler(recordUsecase *usecases.ServiceRecordUsecase) *ServiceRecordHandler {
	return &ServiceRecordHandler{recordUsecase: recordUsecase}
}

// CreateRecord opens a work record for an in-service booking
// POST /api/v1/service-records
func (h *ServiceRecordHandler) CreateRecord(c *gin.Context) {
	var input entities.CreateServiceRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	record, err := h.recordUsecase.CreateRecord(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, record)
}

// GetRecord fetches one service record
// GET /api/v1/service-records/:id
func (h *ServiceRecordHandler) GetRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid service record id"))
		return
	}

	record, err := h.recordUsecase.GetRecord(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}

// ListByVehicle returns a vehicle's service history
// GET /api/v1/vehicles/:id/service-records
func (h *ServiceRecordHandler) ListByVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vehicle id"))
		return
	}

	records, err := h.recordUsecase.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, records)
}

// CompleteRecord finalizes the work and completes the booking
// POST /api/v1/service-records/:id/complete
func (h *ServiceRecordHandler) CompleteRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid service record id"))
		return
	}

	record, err := h.recordUsecase.CompleteRecord(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}
