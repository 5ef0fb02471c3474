package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// BookingUsecase handles service appointment scheduling and the booking
// status lifecycle
type BookingUsecase struct {
	bookingRepo   repositories.BookingRepository
	vehicleRepo   repositories.VehicleRepository
	customerRepo  repositories.CustomerRepository
	notifications *NotificationUsecase
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	bookingRepo repositories.BookingRepository,
	vehicleRepo repositories.VehicleRepository,
	customerRepo repositories.CustomerRepository,
	notifications *NotificationUsecase,
) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:   bookingRepo,
		vehicleRepo:   vehicleRepo,
		customerRepo:  customerRepo,
		notifications: notifications,
	}
}

// CreateBooking schedules an appointment. The vehicle must belong to the
// customer and the slot must be in the future.
func (u *BookingUsecase) CreateBooking(ctx context.Context, input *entities.CreateBookingInput) (*entities.Booking, error) {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid customer id")
	}
	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid vehicle id")
	}

	if input.ScheduledAt.Before(time.Now()) {
		return nil, domainerrors.BadRequest("scheduled time must be in the future")
	}

	vehicle, err := u.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("vehicle not found")
		}
		return nil, err
	}
	if vehicle.CustomerID != customerID {
		return nil, domainerrors.BadRequest("vehicle does not belong to this customer")
	}

	booking := &entities.Booking{
		CustomerID:  customerID,
		VehicleID:   vehicleID,
		ScheduledAt: input.ScheduledAt,
		Status:      entities.BookingPending,
		Notes:       input.Notes,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking fetches one booking
func (u *BookingUsecase) GetBooking(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	booking, err := u.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("booking not found")
		}
		return nil, err
	}
	return booking, nil
}

// ListByCustomer lists a customer's bookings
func (u *BookingUsecase) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Booking, error) {
	return u.bookingRepo.ListByCustomer(ctx, customerID)
}

// ListByDay lists the workshop schedule for one calendar day
func (u *BookingUsecase) ListByDay(ctx context.Context, day time.Time) ([]*entities.Booking, error) {
	return u.bookingRepo.ListByDay(ctx, day)
}

// TransitionStatus moves a booking along its lifecycle. Illegal moves are
// rejected; a confirmation enqueues a customer notification.
func (u *BookingUsecase) TransitionStatus(ctx context.Context, id uuid.UUID, next entities.BookingStatus) (*entities.Booking, error) {
	booking, err := u.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransition(next) {
		return nil, domainerrors.BadRequest(
			fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, next))
	}

	if err := u.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	booking.Status = next
	booking.UpdatedAt = time.Now()

	if next == entities.BookingConfirmed && u.notifications != nil {
		u.notifications.Enqueue(ctx, booking.CustomerID, entities.ChannelEmail,
			"Booking confirmed",
			fmt.Sprintf("Your service appointment on %s is confirmed.", booking.ScheduledAt.Format("Jan 2, 2006 15:04")))
	}

	return booking, nil
}
