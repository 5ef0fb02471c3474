package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoserve.backend/internal/config"
	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLockoutConfig = config.LockoutConfig{
	ThrottleWindow:    15 * time.Minute,
	ThrottleThreshold: 5,
	LockWindow:        time.Hour,
	LockThreshold:     10,
}

func TestLoginGuard_CheckAllowed_Boundary(t *testing.T) {
	cases := []struct {
		name     string
		failures int64
		allowed  bool
	}{
		{"no failures", 0, true},
		{"one under threshold", 4, true},
		{"at threshold", 5, false},
		{"over threshold", 8, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockLoginAttemptRepository)
			guard := usecases.NewLoginGuard(mockRepo, testLockoutConfig)
			ctx := context.Background()

			mockRepo.On("CountRecentFailures", ctx, "alice@example.com", "10.0.0.1", mock.AnythingOfType("time.Time")).
				Return(tc.failures, nil)

			allowed, err := guard.CheckAllowed(ctx, "alice@example.com", "10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestLoginGuard_CheckAllowed_WindowCutoff(t *testing.T) {
	mockRepo := new(MockLoginAttemptRepository)
	guard := usecases.NewLoginGuard(mockRepo, testLockoutConfig)
	ctx := context.Background()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	guard.SetNowFunc(func() time.Time { return now })

	mockRepo.On("CountRecentFailures", ctx, "alice@example.com", "10.0.0.1", now.Add(-15*time.Minute)).
		Return(int64(0), nil)

	_, err := guard.CheckAllowed(ctx, "alice@example.com", "10.0.0.1")
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestLoginGuard_IsLocked_Boundary(t *testing.T) {
	cases := []struct {
		name     string
		failures int64
		locked   bool
	}{
		{"one under threshold", 9, false},
		{"at threshold", 10, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockLoginAttemptRepository)
			guard := usecases.NewLoginGuard(mockRepo, testLockoutConfig)
			ctx := context.Background()

			mockRepo.On("CountFailuresByEmail", ctx, "alice@example.com", mock.AnythingOfType("time.Time")).
				Return(tc.failures, nil)

			locked, err := guard.IsLocked(ctx, "alice@example.com")
			require.NoError(t, err)
			assert.Equal(t, tc.locked, locked)
		})
	}
}

func TestLoginGuard_StoreErrorsSurface(t *testing.T) {
	mockRepo := new(MockLoginAttemptRepository)
	guard := usecases.NewLoginGuard(mockRepo, testLockoutConfig)
	ctx := context.Background()

	mockRepo.On("CountRecentFailures", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("connection refused"))
	mockRepo.On("CountFailuresByEmail", ctx, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("connection refused"))

	_, err := guard.CheckAllowed(ctx, "alice@example.com", "10.0.0.1")
	assert.Error(t, err)

	_, err = guard.IsLocked(ctx, "alice@example.com")
	assert.Error(t, err)
}

func TestLoginGuard_Record(t *testing.T) {
	mockRepo := new(MockLoginAttemptRepository)
	guard := usecases.NewLoginGuard(mockRepo, testLockoutConfig)
	ctx := context.Background()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	guard.SetNowFunc(func() time.Time { return now })

	var recorded *entities.LoginAttempt
	mockRepo.On("Create", ctx, mock.AnythingOfType("*entities.LoginAttempt")).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*entities.LoginAttempt)
	}).Return(nil)

	guard.Record(ctx, "alice@example.com", "10.0.0.1", "test-agent", false)

	require.NotNil(t, recorded)
	assert.Equal(t, "alice@example.com", recorded.Email)
	assert.Equal(t, "10.0.0.1", recorded.IPAddress)
	assert.False(t, recorded.Success)
	assert.Equal(t, now, recorded.AttemptedAt)
}

func TestLoginGuard_RecordSwallowsWriteFailure(t *testing.T) {
	mockRepo := new(MockLoginAttemptRepository)
	guard := usecases.NewLoginGuard(mockRepo, testLockoutConfig)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	// Must not panic or propagate; the login flow treats recording as
	// best-effort.
	guard.Record(ctx, "alice@example.com", "10.0.0.1", "test-agent", true)
}
