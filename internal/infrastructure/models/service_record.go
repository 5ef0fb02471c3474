package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BookingID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	VehicleID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:text;not null"`
	LaborHours  float64   `gorm:"not null;default:0"`
	LaborRate   float64   `gorm:"not null;default:0"`
	PartsTotal  float64   `gorm:"not null;default:0"`
	TotalCost   float64   `gorm:"not null;default:0"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
