package handlers

import (
	"net/http"
	"strconv"

	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/interfaces/http/response"
	"autoserve.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles notification queue endpoints
type NotificationHandler struct {
	notificationUsecase *usecases.NotificationUsecase
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationUsecase *usecases.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

// ListByCustomer lists a customer's notifications
// GET /api/v1/customers/:id/notifications
func (h *NotificationHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid customer id"))
		return
	}

	notifications, err := h.notificationUsecase.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, notifications)
}

// ListPending lists queued notifications for dispatch
// GET /api/v1/notifications/pending?limit=50
func (h *NotificationHandler) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notificationUsecase.ListPending(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, notifications)
}

// MarkSent records a successful delivery
// POST /api/v1/notifications/:id/sent
func (h *NotificationHandler) MarkSent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid notification id"))
		return
	}

	if err := h.notificationUsecase.MarkSent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "notification marked sent"})
}

// MarkFailed records a delivery failure
// POST /api/v1/notifications/:id/failed
func (h *NotificationHandler) MarkFailed(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid notification id"))
		return
	}

	if err := h.notificationUsecase.MarkFailed(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "notification marked failed"})
}
