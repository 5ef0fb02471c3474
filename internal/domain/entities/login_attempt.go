package entities

import (
	"time"

	"github.com/google/uuid"
)

// LoginAttempt is an append-only audit fact. Rows are never mutated or
// deleted; brute-force decisions read windowed failure counts over them.
type LoginAttempt struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	IPAddress   string    `json:"ipAddress"`
	UserAgent   string    `json:"userAgent"`
	Success     bool      `json:"success"`
	AttemptedAt time.Time `json:"attemptedAt"`
}
