package usecases

import (
	"context"
	"time"

	"autoserve.backend/internal/config"
	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/domain/repositories"
	"autoserve.backend/pkg/logger"
	"go.uber.org/zap"
)

// LoginGuard throttles and locks logins based on the append-only attempt
// log. Counts are derived from windowed queries rather than mutable
// counters, so a restart never resets brute-force state.
type LoginGuard struct {
	attemptRepo repositories.LoginAttemptRepository
	cfg         config.LockoutConfig
	now         func() time.Time
}

// NewLoginGuard creates a login guard with the configured windows
func NewLoginGuard(attemptRepo repositories.LoginAttemptRepository, cfg config.LockoutConfig) *LoginGuard {
	return &LoginGuard{
		attemptRepo: attemptRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// SetNowFunc overrides the clock for tests
func (g *LoginGuard) SetNowFunc(now func() time.Time) {
	g.now = now
}

// CheckAllowed reports whether a login attempt for this email/ip pair may
// proceed. The count matches failures by email OR source ip, so rotating
// addresses does not evade the throttle.
func (g *LoginGuard) CheckAllowed(ctx context.Context, email, ip string) (bool, error) {
	since := g.now().Add(-g.cfg.ThrottleWindow)
	failures, err := g.attemptRepo.CountRecentFailures(ctx, email, ip, since)
	if err != nil {
		return false, err
	}
	return failures < int64(g.cfg.ThrottleThreshold), nil
}

// IsLocked reports whether the account has crossed the hard lock threshold.
// A locked account refuses even correct credentials until the window slides
// past the failures.
func (g *LoginGuard) IsLocked(ctx context.Context, email string) (bool, error) {
	since := g.now().Add(-g.cfg.LockWindow)
	failures, err := g.attemptRepo.CountFailuresByEmail(ctx, email, since)
	if err != nil {
		return false, err
	}
	return failures >= int64(g.cfg.LockThreshold), nil
}

// Record appends one attempt fact. Recording is best-effort: a write
// failure is logged but never turned into a login error.
func (g *LoginGuard) Record(ctx context.Context, email, ip, userAgent string, success bool) {
	attempt := &entities.LoginAttempt{
		Email:       email,
		IPAddress:   ip,
		UserAgent:   userAgent,
		Success:     success,
		AttemptedAt: g.now(),
	}
	if err := g.attemptRepo.Create(ctx, attempt); err != nil {
		logger.Error(ctx, "failed to record login attempt",
			zap.String("email", email),
			zap.Error(err))
	}
}
