package entities

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle represents a customer vehicle
type Vehicle struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customerId"`
	VIN        string     `json:"vin"`
	Make       string     `json:"make"`
	Model      string     `json:"model"`
	Year       int        `json:"year"`
	Mileage    int        `json:"mileage"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"-"`
}

// CreateVehicleInput represents input for registering a vehicle
type CreateVehicleInput struct {
	CustomerID string `json:"customerId" binding:"required,uuid"`
	VIN        string `json:"vin" binding:"required,len=17"`
	Make       string `json:"make" binding:"required"`
	Model      string `json:"model" binding:"required"`
	Year       int    `json:"year" binding:"required,min=1950"`
	Mileage    int    `json:"mileage" binding:"min=0"`
}

// UpdateMileageInput represents input for recording a new odometer reading
type UpdateMileageInput struct {
	Mileage int `json:"mileage" binding:"required,min=0"`
}
