package usecases

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ServiceRecordUsecase records work performed against bookings. Totals are
// always recomputed server-side from labor and parts.
type ServiceRecordUsecase struct {
	recordRepo  repositories.ServiceRecordRepository
	bookingRepo repositories.BookingRepository
}

// NewServiceRecordUsecase creates a new service record usecase
func NewServiceRecordUsecase(
	recordRepo repositories.ServiceRecordRepository,
	bookingRepo repositories.BookingRepository,
) *ServiceRecordUsecase {
	return &ServiceRecordUsecase{
		recordRepo:  recordRepo,
		bookingRepo: bookingRepo,
	}
}

// CreateRecord opens a work record for a booking that is in service.
// One record per booking.
func (u *ServiceRecordUsecase) CreateRecord(ctx context.Context, input *entities.CreateServiceRecordInput) (*entities.ServiceRecord, error) {
	bookingID, err := uuid.Parse(input.BookingID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid booking id")
	}

	booking, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("booking not found")
		}
		return nil, err
	}
	if booking.Status != entities.BookingInService {
		return nil, domainerrors.BadRequest("booking is not in service")
	}

	existing, err := u.recordRepo.GetByBookingID(ctx, bookingID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("service record already exists for this booking")
	}

	record := &entities.ServiceRecord{
		BookingID:   bookingID,
		VehicleID:   booking.VehicleID,
		Description: input.Description,
		LaborHours:  input.LaborHours,
		LaborRate:   input.LaborRate,
		PartsTotal:  input.PartsTotal,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	record.ComputeTotal()

	if err := u.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord fetches one service record
func (u *ServiceRecordUsecase) GetRecord(ctx context.Context, id uuid.UUID) (*entities.ServiceRecord, error) {
	record, err := u.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("service record not found")
		}
		return nil, err
	}
	return record, nil
}

// ListByVehicle returns a vehicle's full service history
func (u *ServiceRecordUsecase) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*entities.ServiceRecord, error) {
	return u.recordRepo.ListByVehicle(ctx, vehicleID)
}

// CompleteRecord stamps completion, finalizes the total and moves the
// booking to COMPLETED
func (u *ServiceRecordUsecase) CompleteRecord(ctx context.Context, id uuid.UUID) (*entities.ServiceRecord, error) {
	record, err := u.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.CompletedAt.Valid {
		return nil, domainerrors.Conflict("service record already completed")
	}

	record.ComputeTotal()
	record.CompletedAt = null.TimeFrom(time.Now())
	record.UpdatedAt = time.Now()
	if err := u.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	if err := u.bookingRepo.UpdateStatus(ctx, record.BookingID, entities.BookingCompleted); err != nil {
		return nil, err
	}
	return record, nil
}
