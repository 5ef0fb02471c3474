package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ServiceRecord represents work performed against a booking.
// TotalCost is always computed server-side from labor and parts.
type ServiceRecord struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"bookingId"`
	VehicleID   uuid.UUID  `json:"vehicleId"`
	Description string     `json:"description"`
	LaborHours  float64    `json:"laborHours"`
	LaborRate   float64    `json:"laborRate"`
	PartsTotal  float64    `json:"partsTotal"`
	TotalCost   float64    `json:"totalCost"`
	CompletedAt null.Time  `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// ComputeTotal recalculates the total cost
func (s *ServiceRecord) ComputeTotal() {
	s.TotalCost = s.LaborHours*s.LaborRate + s.PartsTotal
}

// CreateServiceRecordInput represents input for recording service work
type CreateServiceRecordInput struct {
	BookingID   string  `json:"bookingId" binding:"required,uuid"`
	Description string  `json:"description" binding:"required"`
	LaborHours  float64 `json:"laborHours" binding:"min=0"`
	LaborRate   float64 `json:"laborRate" binding:"min=0"`
	PartsTotal  float64 `json:"partsTotal" binding:"min=0"`
}
