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

// WarrantyRepository implements warranty data operations
type WarrantyRepository struct {
	db *gorm.DB
}

// NewWarrantyRepository creates a new warranty repository
func NewWarrantyRepository(db *gorm.DB) *WarrantyRepository {
	return &WarrantyRepository{db: db}
}

// Create registers coverage
func (r *WarrantyRepository) Create(ctx context.Context, warranty *entities.Warranty) error {
	if warranty.ID == uuid.Nil {
		warranty.ID = uuid.New()
	}
	m := &models.Warranty{
		ID:           warranty.ID,
		VehicleID:    warranty.VehicleID,
		Type:         string(warranty.Type),
		StartsAt:     warranty.StartsAt,
		ExpiresAt:    warranty.ExpiresAt,
		MileageLimit: warranty.MileageLimit,
		Active:       warranty.Active,
		CreatedAt:    warranty.CreatedAt,
		UpdatedAt:    warranty.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a warranty by ID
func (r *WarrantyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Warranty, error) {
	var m models.Warranty
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return warrantyToEntity(&m), nil
}

// ListByVehicle lists coverage attached to a vehicle
func (r *WarrantyRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*entities.Warranty, error) {
	var warrantyModels []models.Warranty
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("expires_at DESC").
		Find(&warrantyModels).Error
	if err != nil {
		return nil, err
	}

	var warranties []*entities.Warranty
	for _, m := range warrantyModels {
		model := m
		warranties = append(warranties, warrantyToEntity(&model))
	}
	return warranties, nil
}

// Deactivate marks coverage inactive
func (r *WarrantyRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Warranty{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     false,
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

func warrantyToEntity(m *models.Warranty) *entities.Warranty {
	return &entities.Warranty{
		ID:           m.ID,
		VehicleID:    m.VehicleID,
		Type:         entities.WarrantyType(m.Type),
		StartsAt:     m.StartsAt,
		ExpiresAt:    m.ExpiresAt,
		MileageLimit: m.MileageLimit,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
