package handlers

import (
	"net/http"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/interfaces/http/response"
	"autoserve.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles service booking endpoints
type BookingHandler struct {
	bookingUsecase *usecases.BookingUsecase
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase *usecases.BookingUsecase) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase}
}

// CreateBooking schedules an appointment
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, booking)
}

// GetBooking fetches one booking
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid booking id"))
		return
	}

	booking, err := h.bookingUsecase.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}

// ListBookings lists the schedule for one day, defaulting to today
// GET /api/v1/bookings?day=2026-08-28
func (h *BookingHandler) ListBookings(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid day, expected YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	bookings, err := h.bookingUsecase.ListByDay(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

// ListByCustomer lists a customer's bookings
// GET /api/v1/customers/:id/bookings
func (h *BookingHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid customer id"))
		return
	}

	bookings, err := h.bookingUsecase.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bookings)
}

// UpdateStatus moves a booking along its lifecycle
// PUT /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid booking id"))
		return
	}

	var input entities.UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	booking, err := h.bookingUsecase.TransitionStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, booking)
}
