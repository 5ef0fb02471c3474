package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle of a service booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingInService BookingStatus = "IN_SERVICE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// bookingTransitions defines the allowed status transitions
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingInService, BookingCancelled},
	BookingInService: {BookingCompleted},
}

// CanTransition reports whether a booking may move from its current status to next
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents a scheduled service appointment
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	CustomerID  uuid.UUID     `json:"customerId"`
	VehicleID   uuid.UUID     `json:"vehicleId"`
	ScheduledAt time.Time     `json:"scheduledAt"`
	Status      BookingStatus `json:"status"`
	Notes       string        `json:"notes"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	DeletedAt   *time.Time    `json:"-"`
}

// CreateBookingInput represents input for scheduling a booking
type CreateBookingInput struct {
	CustomerID  string    `json:"customerId" binding:"required,uuid"`
	VehicleID   string    `json:"vehicleId" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Notes       string    `json:"notes"`
}

// UpdateBookingStatusInput represents input for a status transition
type UpdateBookingStatusInput struct {
	Status BookingStatus `json:"status" binding:"required"`
}
