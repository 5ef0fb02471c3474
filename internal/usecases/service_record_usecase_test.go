package usecases_test

import (
	"context"
	"testing"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/usecases"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestServiceRecordUsecase_CreateRecord(t *testing.T) {
	recordRepo := new(MockServiceRecordRepository)
	bookingRepo := new(MockBookingRepository)
	uc := usecases.NewServiceRecordUsecase(recordRepo, bookingRepo)
	ctx := context.Background()

	bookingID := uuid.New()
	vehicleID := uuid.New()
	bookingRepo.On("GetByID", ctx, bookingID).Return(&entities.Booking{
		ID:        bookingID,
		VehicleID: vehicleID,
		Status:    entities.BookingInService,
	}, nil)
	recordRepo.On("GetByBookingID", ctx, bookingID).Return(nil, domainerrors.ErrNotFound)
	recordRepo.On("Create", ctx, mock.AnythingOfType("*entities.ServiceRecord")).Return(nil)

	record, err := uc.CreateRecord(ctx, &entities.CreateServiceRecordInput{
		BookingID:   bookingID.String(),
		Description: "brake pad replacement",
		LaborHours:  1.5,
		LaborRate:   90,
		PartsTotal:  120,
	})

	require.NoError(t, err)
	assert.Equal(t, vehicleID, record.VehicleID)
	// labor 1.5 * 90 + parts 120
	assert.InDelta(t, 255.0, record.TotalCost, 0.001)
	assert.False(t, record.CompletedAt.Valid)
}

func TestServiceRecordUsecase_CreateRecord_BookingNotInService(t *testing.T) {
	recordRepo := new(MockServiceRecordRepository)
	bookingRepo := new(MockBookingRepository)
	uc := usecases.NewServiceRecordUsecase(recordRepo, bookingRepo)
	ctx := context.Background()

	bookingID := uuid.New()
	bookingRepo.On("GetByID", ctx, bookingID).Return(&entities.Booking{
		ID:     bookingID,
		Status: entities.BookingConfirmed,
	}, nil)

	_, err := uc.CreateRecord(ctx, &entities.CreateServiceRecordInput{
		BookingID:   bookingID.String(),
		Description: "too early",
	})

	assert.Equal(t, 400, appStatus(t, err))
	recordRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestServiceRecordUsecase_CreateRecord_DuplicateBooking(t *testing.T) {
	recordRepo := new(MockServiceRecordRepository)
	bookingRepo := new(MockBookingRepository)
	uc := usecases.NewServiceRecordUsecase(recordRepo, bookingRepo)
	ctx := context.Background()

	bookingID := uuid.New()
	bookingRepo.On("GetByID", ctx, bookingID).Return(&entities.Booking{
		ID:     bookingID,
		Status: entities.BookingInService,
	}, nil)
	recordRepo.On("GetByBookingID", ctx, bookingID).Return(&entities.ServiceRecord{ID: uuid.New()}, nil)

	_, err := uc.CreateRecord(ctx, &entities.CreateServiceRecordInput{
		BookingID:   bookingID.String(),
		Description: "second opinion",
	})

	assert.Equal(t, 409, appStatus(t, err))
}

func TestServiceRecordUsecase_CompleteRecord(t *testing.T) {
	recordRepo := new(MockServiceRecordRepository)
	bookingRepo := new(MockBookingRepository)
	uc := usecases.NewServiceRecordUsecase(recordRepo, bookingRepo)
	ctx := context.Background()

	recordID := uuid.New()
	bookingID := uuid.New()
	recordRepo.On("GetByID", ctx, recordID).Return(&entities.ServiceRecord{
		ID:         recordID,
		BookingID:  bookingID,
		LaborHours: 2,
		LaborRate:  100,
		PartsTotal: 50,
	}, nil)
	recordRepo.On("Update", ctx, mock.AnythingOfType("*entities.ServiceRecord")).Return(nil)
	bookingRepo.On("UpdateStatus", ctx, bookingID, entities.BookingCompleted).Return(nil)

	record, err := uc.CompleteRecord(ctx, recordID)

	require.NoError(t, err)
	assert.True(t, record.CompletedAt.Valid)
	assert.InDelta(t, 250.0, record.TotalCost, 0.001)
	bookingRepo.AssertCalled(t, "UpdateStatus", ctx, bookingID, entities.BookingCompleted)
}

func TestServiceRecordUsecase_CompleteRecord_AlreadyCompleted(t *testing.T) {
	recordRepo := new(MockServiceRecordRepository)
	bookingRepo := new(MockBookingRepository)
	uc := usecases.NewServiceRecordUsecase(recordRepo, bookingRepo)
	ctx := context.Background()

	recordID := uuid.New()
	recordRepo.On("GetByID", ctx, recordID).Return(&entities.ServiceRecord{
		ID:          recordID,
		CompletedAt: null.TimeFrom(time.Now()),
	}, nil)

	_, err := uc.CompleteRecord(ctx, recordID)

	assert.Equal(t, 409, appStatus(t, err))
	recordRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
