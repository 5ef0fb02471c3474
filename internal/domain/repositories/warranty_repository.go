package repositories

import (
	"context"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type WarrantyRepository interface {
	Create(ctx context.Context, warranty *entities.Warranty) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Warranty, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*entities.Warranty, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}
