package repositories

import (
	"context"
	"time"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Booking, error)
	ListByDay(ctx context.Context, day time.Time) ([]*entities.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error
}
