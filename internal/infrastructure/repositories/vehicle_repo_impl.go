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

// VehicleRepository implements vehicle data operations
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create registers a vehicle
func (r *VehicleRepository) Create(ctx context.Context, vehicle *entities.Vehicle) error {
	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}
	m := &models.Vehicle{
		ID:         vehicle.ID,
		CustomerID: vehicle.CustomerID,
		VIN:        vehicle.VIN,
		Make:       vehicle.Make,
		Model:      vehicle.Model,
		Year:       vehicle.Year,
		Mileage:    vehicle.Mileage,
		CreatedAt:  vehicle.CreatedAt,
		UpdatedAt:  vehicle.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a vehicle by ID
func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vehicle, error) {
	var m models.Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return vehicleToEntity(&m), nil
}

// GetByVIN gets a vehicle by VIN
func (r *VehicleRepository) GetByVIN(ctx context.Context, vin string) (*entities.Vehicle, error) {
	var m models.Vehicle
	if err := r.db.WithContext(ctx).Where("vin = ?", vin).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return vehicleToEntity(&m), nil
}

// ListByCustomer lists a customer's vehicles
func (r *VehicleRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Vehicle, error) {
	var vehicleModels []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&vehicleModels).Error
	if err != nil {
		return nil, err
	}

	var vehicles []*entities.Vehicle
	for _, m := range vehicleModels {
		model := m
		vehicles = append(vehicles, vehicleToEntity(&model))
	}
	return vehicles, nil
}

// UpdateMileage records a new odometer reading. Odometers only go up; a
// lower reading than the stored one is rejected as not found by the guard.
func (r *VehicleRepository) UpdateMileage(ctx context.Context, id uuid.UUID, mileage int) error {
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ? AND mileage <= ?", id, mileage).
		Updates(map[string]interface{}{
			"mileage":    mileage,
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

// SoftDelete soft deletes a vehicle
func (r *VehicleRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func vehicleToEntity(m *models.Vehicle) *entities.Vehicle {
	return &entities.Vehicle{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		VIN:        m.VIN,
		Make:       m.Make,
		Model:      m.Model,
		Year:       m.Year,
		Mileage:    m.Mileage,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
