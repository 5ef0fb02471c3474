package entities

import (
	"time"

	"github.com/google/uuid"
)

// WarrantyType classifies warranty coverage
type WarrantyType string

const (
	WarrantyManufacturer WarrantyType = "MANUFACTURER"
	WarrantyExtended     WarrantyType = "EXTENDED"
	WarrantyPowertrain   WarrantyType = "POWERTRAIN"
)

// Warranty represents coverage attached to a vehicle
type Warranty struct {
	ID           uuid.UUID    `json:"id"`
	VehicleID    uuid.UUID    `json:"vehicleId"`
	Type         WarrantyType `json:"type"`
	StartsAt     time.Time    `json:"startsAt"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	MileageLimit int          `json:"mileageLimit"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	DeletedAt    *time.Time   `json:"-"`
}

// Covers reports claim eligibility: the warranty is active, now falls inside
// the coverage window, and the vehicle mileage is within the limit.
func (w *Warranty) Covers(now time.Time, mileage int) bool {
	if !w.Active {
		return false
	}
	if now.Before(w.StartsAt) || now.After(w.ExpiresAt) {
		return false
	}
	return w.MileageLimit == 0 || mileage <= w.MileageLimit
}

// CreateWarrantyInput represents input for registering coverage
type CreateWarrantyInput struct {
	VehicleID    string       `json:"vehicleId" binding:"required,uuid"`
	Type         WarrantyType `json:"type" binding:"required"`
	StartsAt     time.Time    `json:"startsAt" binding:"required"`
	ExpiresAt    time.Time    `json:"expiresAt" binding:"required"`
	MileageLimit int          `json:"mileageLimit" binding:"min=0"`
}
