package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	VIN        string    `gorm:"type:varchar(17);uniqueIndex;not null"`
	Make       string    `gorm:"type:varchar(50);not null"`
	Model      string    `gorm:"type:varchar(50);not null"`
	Year       int       `gorm:"not null"`
	Mileage    int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Customer Customer `gorm:"foreignKey:CustomerID"`
}
