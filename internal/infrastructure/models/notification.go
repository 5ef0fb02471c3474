package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Channel    string    `gorm:"type:varchar(10);not null"`
	Subject    string    `gorm:"type:varchar(255);not null"`
	Body       string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
