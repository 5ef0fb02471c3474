package repositories

import (
	"context"
	"errors"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/infrastructure/models"
	"autoserve.backend/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository implements customer data operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	m := &models.Customer{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return customerToEntity(&m), nil
}

// GetByEmail gets a customer by email
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*entities.Customer, error) {
	var m models.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return customerToEntity(&m), nil
}

// Update updates mutable customer fields
func (r *CustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	updates := map[string]interface{}{
		"name":       customer.Name,
		"phone":      customer.Phone,
		"address":    customer.Address,
		"updated_at": time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists customers with optional search, paginated
func (r *CustomerRepository) List(ctx context.Context, search string, page utils.PaginationParams) ([]*entities.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", searchTerm, searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if page.Limit > 0 {
		query = query.Offset(page.CalculateOffset()).Limit(page.Limit)
	}

	var customerModels []models.Customer
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, 0, err
	}

	var customers []*entities.Customer
	for _, m := range customerModels {
		model := m
		customers = append(customers, customerToEntity(&model))
	}
	return customers, total, nil
}

// SoftDelete soft deletes a customer
func (r *CustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func customerToEntity(m *models.Customer) *entities.Customer {
	return &entities.Customer{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
