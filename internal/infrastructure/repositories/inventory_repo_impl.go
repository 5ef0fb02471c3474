package repositories

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository implements parts inventory data operations
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Create adds a part
func (r *InventoryRepository) Create(ctx context.Context, part *entities.InventoryPart) error {
	if part.ID == uuid.Nil {
		part.ID = uuid.New()
	}
	m := &models.InventoryPart{
		ID:           part.ID,
		SKU:          part.SKU,
		Name:         part.Name,
		Quantity:     part.Quantity,
		UnitPrice:    part.UnitPrice,
		ReorderLevel: part.ReorderLevel,
		CreatedAt:    part.CreatedAt,
		UpdatedAt:    part.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a part by ID
func (r *InventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.InventoryPart, error) {
	var m models.InventoryPart
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return partToEntity(&m), nil
}

// GetBySKU gets a part by SKU
func (r *InventoryRepository) GetBySKU(ctx context.Context, sku string) (*entities.InventoryPart, error) {
	var m models.InventoryPart
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return partToEntity(&m), nil
}

// List lists all parts
func (r *InventoryRepository) List(ctx context.Context) ([]*entities.InventoryPart, error) {
	var partModels []models.InventoryPart
	if err := r.db.WithContext(ctx).Order("sku ASC").Find(&partModels).Error; err != nil {
		return nil, err
	}
	return partsToEntities(partModels), nil
}

// ListLowStock lists parts at or below their reorder level
func (r *InventoryRepository) ListLowStock(ctx context.Context) ([]*entities.InventoryPart, error) {
	var partModels []models.InventoryPart
	err := r.db.WithContext(ctx).
		Where("quantity <= reorder_level").
		Order("sku ASC").
		Find(&partModels).Error
	if err != nil {
		return nil, err
	}
	return partsToEntities(partModels), nil
}

// AdjustStock applies delta in a single conditional update so two
// concurrent consumers cannot drive the quantity negative.
func (r *InventoryRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).Model(&models.InventoryPart{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func partsToEntities(partModels []models.InventoryPart) []*entities.InventoryPart {
	var parts []*entities.InventoryPart
	for _, m := range partModels {
		model := m
		parts = append(parts, partToEntity(&model))
	}
	return parts
}

func partToEntity(m *models.InventoryPart) *entities.InventoryPart {
	return &entities.InventoryPart{
		ID:           m.ID,
		SKU:          m.SKU,
		Name:         m.Name,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		ReorderLevel: m.ReorderLevel,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
