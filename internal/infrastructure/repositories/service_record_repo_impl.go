package repositories

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// ServiceRecordRepository implements service record data operations
type ServiceRecordRepository struct {
	db *gorm.DB
}

// NewServiceRecordRepository creates a new service record repository
func NewServiceRecordRepository(db *gorm.DB) *ServiceRecordRepository {
	return &ServiceRecordRepository{db: db}
}

// Create records service work
func (r *ServiceRecordRepository) Create(ctx context.Context, record *entities.ServiceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m := &models.ServiceRecord{
		ID:          record.ID,
		BookingID:   record.BookingID,
		VehicleID:   record.VehicleID,
		Description: record.Description,
		LaborHours:  record.LaborHours,
		LaborRate:   record.LaborRate,
		PartsTotal:  record.PartsTotal,
		TotalCost:   record.TotalCost,
		CompletedAt: record.CompletedAt.Ptr(),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a record by ID
func (r *ServiceRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceRecord, error) {
	var m models.ServiceRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return serviceRecordToEntity(&m), nil
}

// GetByBookingID gets the record attached to a booking
func (r *ServiceRecordRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*entities.ServiceRecord, error) {
	var m models.ServiceRecord
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return serviceRecordToEntity(&m), nil
}

// ListByVehicle lists a vehicle's service history, newest first
func (r *ServiceRecordRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*entities.ServiceRecord, error) {
	var recordModels []models.ServiceRecord
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	var records []*entities.ServiceRecord
	for _, m := range recordModels {
		model := m
		records = append(records, serviceRecordToEntity(&model))
	}
	return records, nil
}

// Update updates a record's work details
func (r *ServiceRecordRepository) Update(ctx context.Context, record *entities.ServiceRecord) error {
	updates := map[string]interface{}{
		"description": record.Description,
		"labor_hours": record.LaborHours,
		"labor_rate":  record.LaborRate,
		"parts_total": record.PartsTotal,
		"total_cost":  record.TotalCost,
		"updated_at":  time.Now(),
	}
	if record.CompletedAt.Valid {
		updates["completed_at"] = record.CompletedAt.Time
	}

	result := r.db.WithContext(ctx).Model(&models.ServiceRecord{}).Where("id = ?", record.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func serviceRecordToEntity(m *models.ServiceRecord) *entities.ServiceRecord {
	return &entities.ServiceRecord{
		ID:          m.ID,
		BookingID:   m.BookingID,
		VehicleID:   m.VehicleID,
		Description: m.Description,
		LaborHours:  m.LaborHours,
		LaborRate:   m.LaborRate,
		PartsTotal:  m.PartsTotal,
		TotalCost:   m.TotalCost,
		CompletedAt: null.TimeFromPtr(m.CompletedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
