package repositories

import (
	"context"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type ServiceRecordRepository interface {
	Create(ctx context.Context, record *entities.ServiceRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceRecord, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*entities.ServiceRecord, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*entities.ServiceRecord, error)
	Update(ctx context.Context, record *entities.ServiceRecord) error
}
