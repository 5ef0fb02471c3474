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

// BookingRepository implements booking data operations
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create schedules a booking
func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	m := &models.Booking{
		ID:          booking.ID,
		CustomerID:  booking.CustomerID,
		VehicleID:   booking.VehicleID,
		ScheduledAt: booking.ScheduledAt,
		Status:      string(booking.Status),
		Notes:       booking.Notes,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return bookingToEntity(&m), nil
}

// ListByCustomer lists a customer's bookings, newest first
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Booking, error) {
	var bookingModels []models.Booking
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("scheduled_at DESC").
		Find(&bookingModels).Error
	if err != nil {
		return nil, err
	}
	return bookingsToEntities(bookingModels), nil
}

// ListByDay lists bookings scheduled within one calendar day
func (r *BookingRepository) ListByDay(ctx context.Context, day time.Time) ([]*entities.Booking, error) {
	start := day.Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	var bookingModels []models.Booking
	err := r.db.WithContext(ctx).
		Where("scheduled_at >= ? AND scheduled_at < ?", start, end).
		Order("scheduled_at ASC").
		Find(&bookingModels).Error
	if err != nil {
		return nil, err
	}
	return bookingsToEntities(bookingModels), nil
}

// UpdateStatus moves a booking to a new status
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
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

func bookingsToEntities(bookingModels []models.Booking) []*entities.Booking {
	var bookings []*entities.Booking
	for _, m := range bookingModels {
		model := m
		bookings = append(bookings, bookingToEntity(&model))
	}
	return bookings
}

func bookingToEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		VehicleID:   m.VehicleID,
		ScheduledAt: m.ScheduledAt,
		Status:      entities.BookingStatus(m.Status),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
