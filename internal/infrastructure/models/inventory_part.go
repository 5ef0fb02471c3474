package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryPart struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SKU          string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Quantity     int       `gorm:"not null;default:0"`
	UnitPrice    float64   `gorm:"not null;default:0"`
	ReorderLevel int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
