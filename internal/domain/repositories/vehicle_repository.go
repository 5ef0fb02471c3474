package repositories

import (
	"context"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entities.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Vehicle, error)
	GetByVIN(ctx context.Context, vin string) (*entities.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Vehicle, error)
	UpdateMileage(ctx context.Context, id uuid.UUID, mileage int) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
