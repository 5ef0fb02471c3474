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

// InventoryHandler handles parts inventory endpoints
type InventoryHandler struct {
	inventoryUsecase *usecases.InventoryUsecase
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryUsecase *usecases.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{inventoryUsecase: inventoryUsecase}
}

// CreatePart adds a part
// POST /api/v1/inventory
func (h *InventoryHandler) CreatePart(c *gin.Context) {
	var input entities.CreatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	part, err := h.inventoryUsecase.CreatePart(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, part)
}

// GetPart fetches one part
// GET /api/v1/inventory/:id
func (h *InventoryHandler) GetPart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid part id"))
		return
	}

	part, err := h.inventoryUsecase.GetPart(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, part)
}

// ListParts lists all parts
// GET /api/v1/inventory
func (h *InventoryHandler) ListParts(c *gin.Context) {
	parts, err := h.inventoryUsecase.ListParts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, parts)
}

// ListLowStock lists parts at or below their reorder level
// GET /api/v1/inventory/low-stock
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	parts, err := h.inventoryUsecase.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, parts)
}

// AdjustStock applies a stock movement
// POST /api/v1/inventory/:id/adjust
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid part id"))
		return
	}

	var input entities.AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	part, err := h.inventoryUsecase.AdjustStock(c.Request.Context(), id, input.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, part)
}
