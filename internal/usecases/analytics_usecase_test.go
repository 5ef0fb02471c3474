package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpoint(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/v1/bookings", "bookings"},
		{"/api/v1/bookings/42", "bookings"},
		{"/api/v1/bookings?day=2026-08-28", "bookings"},
		{"/api/v1/customers/7/vehicles", "customers"},
		{"/health", "health"},
		{"/", "root"},
		{"", "root"},
		{"/api/v1", "root"},
		{"/api/v1/", "root"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, usecases.ResolveEndpoint(tc.path), "path %q", tc.path)
	}
}

func TestAnalyticsUsecase_Record(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	uc := usecases.NewAnalyticsUsecase(mockRepo)
	ctx := context.Background()

	mockRepo.On("CreateRequestLog", ctx, mock.AnythingOfType("*entities.RequestLog")).Return(nil)
	mockRepo.On("RecordRequest", ctx, mock.AnythingOfType("time.Time"), "ops-dashboard", "bookings", true, int64(42)).Return(nil)

	uc.Record(ctx, &entities.RequestLog{
		KeyIdentity:    "ops-dashboard",
		Method:         "GET",
		Path:           "/api/v1/bookings/17",
		StatusCode:     200,
		ResponseTimeMs: 42,
	})

	mockRepo.AssertExpectations(t)
}

func TestAnalyticsUsecase_Record_Defaults(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	uc := usecases.NewAnalyticsUsecase(mockRepo)
	ctx := context.Background()

	var log *entities.RequestLog
	mockRepo.On("CreateRequestLog", ctx, mock.AnythingOfType("*entities.RequestLog")).Run(func(args mock.Arguments) {
		log = args.Get(1).(*entities.RequestLog)
	}).Return(nil)
	mockRepo.On("RecordRequest", ctx, mock.Anything, "anonymous", "customers", false, int64(5)).Return(nil)

	uc.Record(ctx, &entities.RequestLog{
		Method:         "GET",
		Path:           "/api/v1/customers",
		StatusCode:     401,
		ResponseTimeMs: 5,
	})

	require.NotNil(t, log)
	assert.Equal(t, "anonymous", log.KeyIdentity)
	assert.Equal(t, "customers", log.Endpoint)
	assert.False(t, log.CreatedAt.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestAnalyticsUsecase_Record_SuccessClassification(t *testing.T) {
	cases := []struct {
		status  int
		success bool
	}{
		{200, true},
		{201, true},
		{299, true},
		{301, false},
		{404, false},
		{500, false},
	}

	for _, tc := range cases {
		mockRepo := new(MockAnalyticsRepository)
		uc := usecases.NewAnalyticsUsecase(mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateRequestLog", ctx, mock.Anything).Return(nil)
		mockRepo.On("RecordRequest", ctx, mock.Anything, mock.Anything, mock.Anything, tc.success, mock.Anything).Return(nil)

		uc.Record(ctx, &entities.RequestLog{
			KeyIdentity: "k1",
			Path:        "/api/v1/bookings",
			StatusCode:  tc.status,
		})

		mockRepo.AssertExpectations(t)
	}
}

func TestAnalyticsUsecase_Record_SwallowsStoreErrors(t *testing.T) {
	mockRepo := new(MockAnalyticsRepository)
	uc := usecases.NewAnalyticsUsecase(mockRepo)
	ctx := context.Background()

	mockRepo.On("CreateRequestLog", ctx, mock.Anything).Return(errors.New("disk full"))
	mockRepo.On("RecordRequest", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("disk full"))

	// A broken analytics store must not surface; the request it describes
	// has already been served.
	uc.Record(ctx, &entities.RequestLog{
		KeyIdentity: "k1",
		Path:        "/api/v1/bookings",
		StatusCode:  200,
		CreatedAt:   time.Now(),
	})

	mockRepo.AssertExpectations(t)
}
