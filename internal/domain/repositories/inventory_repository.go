package repositories

import (
	"context"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type InventoryRepository interface {
	Create(ctx context.Context, part *entities.InventoryPart) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.InventoryPart, error)
	GetBySKU(ctx context.Context, sku string) (*entities.InventoryPart, error)
	List(ctx context.Context) ([]*entities.InventoryPart, error)
	ListLowStock(ctx context.Context) ([]*entities.InventoryPart, error)
	// AdjustStock applies delta atomically; it fails rather than letting
	// quantity go negative under concurrent consumption.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}
