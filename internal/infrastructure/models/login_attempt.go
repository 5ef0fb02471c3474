package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginAttempt rows are append-only; no UpdatedAt/DeletedAt on purpose.
type LoginAttempt struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email       string    `gorm:"type:varchar(255);not null;index:idx_login_attempts_email_time"`
	IPAddress   string    `gorm:"type:varchar(45);not null;index:idx_login_attempts_ip_time"`
	UserAgent   string    `gorm:"type:text"`
	Success     bool      `gorm:"not null"`
	AttemptedAt time.Time `gorm:"not null;index:idx_login_attempts_email_time;index:idx_login_attempts_ip_time"`
}
