package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Warranty struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VehicleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type         string    `gorm:"type:varchar(30);not null"`
	StartsAt     time.Time `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	MileageLimit int       `gorm:"not null;default:0"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
