package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record created alongside a token so sessions
// can be bulk-invalidated (logout-all). Token validity itself is determined
// purely by signature and expiry.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
