package usecases

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"autoserve.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryUsecase manages the parts inventory
type InventoryUsecase struct {
	inventoryRepo repositories.InventoryRepository
}

// NewInventoryUsecase creates a new inventory usecase
func NewInventoryUsecase(inventoryRepo repositories.InventoryRepository) *InventoryUsecase {
	return &InventoryUsecase{inventoryRepo: inventoryRepo}
}

// CreatePart adds a part; SKU is unique
func (u *InventoryUsecase) CreatePart(ctx context.Context, input *entities.CreatePartInput) (*entities.InventoryPart, error) {
	existing, err := u.inventoryRepo.GetBySKU(ctx, input.SKU)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("part with this SKU already exists")
	}

	part := &entities.InventoryPart{
		SKU:          input.SKU,
		Name:         input.Name,
		Quantity:     input.Quantity,
		UnitPrice:    input.UnitPrice,
		ReorderLevel: input.ReorderLevel,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.inventoryRepo.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// GetPart fetches one part
func (u *InventoryUsecase) GetPart(ctx context.Context, id uuid.UUID) (*entities.InventoryPart, error) {
	part, err := u.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("part not found")
		}
		return nil, err
	}
	return part, nil
}

// ListParts lists all parts
func (u *InventoryUsecase) ListParts(ctx context.Context) ([]*entities.InventoryPart, error) {
	return u.inventoryRepo.List(ctx)
}

// ListLowStock lists parts at or below their reorder level
func (u *InventoryUsecase) ListLowStock(ctx context.Context) ([]*entities.InventoryPart, error) {
	return u.inventoryRepo.ListLowStock(ctx)
}

// AdjustStock applies a stock movement. The repository rejects movements
// that would drive the quantity negative, so an over-consume surfaces as a
// conflict rather than corrupt stock.
func (u *InventoryUsecase) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entities.InventoryPart, error) {
	if delta == 0 {
		return nil, domainerrors.BadRequest("delta must be non-zero")
	}

	part, err := u.GetPart(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.inventoryRepo.AdjustStock(ctx, id, delta); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Conflict("insufficient stock")
		}
		return nil, err
	}

	part, err = u.GetPart(ctx, id)
	if err != nil {
		return nil, err
	}

	if part.LowStock() {
		logger.Warn(ctx, "part at or below reorder level",
			zap.String("sku", part.SKU),
			zap.Int("quantity", part.Quantity),
			zap.Int("reorder_level", part.ReorderLevel))
	}
	return part, nil
}
