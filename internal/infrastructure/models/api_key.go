package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	KeyPrefix    string    `gorm:"type:varchar(20);not null"`
	KeyHash      string    `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of key
	SecretMasked string    `gorm:"type:varchar(20);not null"`             // "****abcd"
	Permissions  string    `gorm:"type:text;not null"`                    // JSON string
	RateLimit    int       `gorm:"not null;default:0"`                    // requests per hour, 0 = deployment default
	IsActive     bool      `gorm:"default:true;not null"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;index"`
	LastUsedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
