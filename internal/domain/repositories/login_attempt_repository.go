package repositories

import (
	"context"
	"time"

	"autoserve.backend/internal/domain/entities"
)

type LoginAttemptRepository interface {
	// Create appends an attempt; rows are never mutated afterwards
	Create(ctx context.Context, attempt *entities.LoginAttempt) error
	// CountRecentFailures counts failed attempts matching email OR ip since the cutoff
	CountRecentFailures(ctx context.Context, email, ip string, since time.Time) (int64, error)
	// CountFailuresByEmail counts failed attempts for one email since the cutoff
	CountFailuresByEmail(ctx context.Context, email string, since time.Time) (int64, error)
}
