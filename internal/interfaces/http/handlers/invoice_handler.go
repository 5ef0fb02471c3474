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

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	invoiceUsecase *usecases.InvoiceUsecase
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceUsecase *usecases.InvoiceUsecase) *InvoiceHandler {
	return &InvoiceHandler{invoiceUsecase: invoiceUsecase}
}

// IssueInvoice issues an invoice from a completed service record
// POST /api/v1/invoices
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	var input entities.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	invoice, err := h.invoiceUsecase.IssueInvoice(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, invoice)
}

// GetInvoice fetches one invoice
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid invoice id"))
		return
	}

	invoice, err := h.invoiceUsecase.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoice)
}

// ListByCustomer lists a customer's invoices
// GET /api/v1/customers/:id/invoices
func (h *InvoiceHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid customer id"))
		return
	}

	invoices, err := h.invoiceUsecase.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoices)
}

// UpdateStatus moves an invoice along its lifecycle
// PUT /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid invoice id"))
		return
	}

	var input struct {
		Status entities.InvoiceStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	invoice, err := h.invoiceUsecase.TransitionStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoice)
}
