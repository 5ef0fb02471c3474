package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceRecordID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Number          string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	Subtotal        float64   `gorm:"not null;default:0"`
	TaxRate         float64   `gorm:"not null;default:0"`
	TaxAmount       float64   `gorm:"not null;default:0"`
	Total           float64   `gorm:"not null;default:0"`
	Status          string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	IssuedAt        time.Time
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
