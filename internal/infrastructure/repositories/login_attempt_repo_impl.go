package repositories

import (
	"context"

	"time"

	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginAttemptRepository implements the append-only login attempt log
type LoginAttemptRepository struct {
	db *gorm.DB
}

// NewLoginAttemptRepository creates a new login attempt repository
func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Create appends an attempt row
func (r *LoginAttemptRepository) Create(ctx context.Context, attempt *entities.LoginAttempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	m := &models.LoginAttempt{
		ID:          attempt.ID,
		Email:       attempt.Email,
		IPAddress:   attempt.IPAddress,
		UserAgent:   attempt.UserAgent,
		Success:     attempt.Success,
		AttemptedAt: attempt.AttemptedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// CountRecentFailures counts failed attempts from either the email or the IP
// since the cutoff. Matching on OR means an attacker rotating accounts from
// one address still trips the throttle.
func (r *LoginAttemptRepository) CountRecentFailures(ctx context.Context, email, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoginAttempt{}).
		Where("success = ? AND attempted_at >= ?", false, since).
		Where("email = ? OR ip_address = ?", email, ip).
		Count(&count).Error
	return count, err
}

// CountFailuresByEmail counts failed attempts for one email since the cutoff
func (r *LoginAttemptRepository) CountFailuresByEmail(ctx context.Context, email string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LoginAttempt{}).
		Where("email = ? AND success = ? AND attempted_at >= ?", email, false, since).
		Count(&count).Error
	return count, err
}
