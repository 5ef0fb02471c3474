package handlers

import (
	"net/http"
	"strconv"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/interfaces/http/response"
	"autoserve.backend/internal/usecases"
	"autoserve.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerUsecase *usecases.CustomerUsecase
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerUsecase *usecases.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{customerUsecase: customerUsecase}
}

// CreateCustomer registers a customer
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var input entities.CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.customerUsecase.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, customer)
}

// GetCustomer fetches one customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid customer id"))
		return
	}

	customer, err := h.customerUsecase.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// UpdateCustomer updates contact details
// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid customer id"))
		return
	}

	var input entities.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.customerUsecase.UpdateCustomer(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// ListCustomers lists customers with optional search and pagination
// GET /api/v1/customers?search=&page=&limit=
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	customers, meta, err := h.customerUsecase.ListCustomers(c.Request.Context(), c.Query("search"), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"customers":  customers,
		"pagination": meta,
	})
}

// DeleteCustomer soft-deletes a customer
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid customer id"))
		return
	}

	if err := h.customerUsecase.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "customer deleted"})
}
