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

// InvoiceRepository implements invoice data operations
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates an invoice
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entities.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	m := &models.Invoice{
		ID:              invoice.ID,
		CustomerID:      invoice.CustomerID,
		ServiceRecordID: invoice.ServiceRecordID,
		Number:          invoice.Number,
		Subtotal:        invoice.Subtotal,
		TaxRate:         invoice.TaxRate,
		TaxAmount:       invoice.TaxAmount,
		Total:           invoice.Total,
		Status:          string(invoice.Status),
		IssuedAt:        invoice.IssuedAt,
		PaidAt:          invoice.PaidAt.Ptr(),
		CreatedAt:       invoice.CreatedAt,
		UpdatedAt:       invoice.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Invoice, error) {
	var m models.Invoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return invoiceToEntity(&m), nil
}

// ListByCustomer lists a customer's invoices, newest first
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Invoice, error) {
	var invoiceModels []models.Invoice
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invoiceModels).Error
	if err != nil {
		return nil, err
	}

	var invoices []*entities.Invoice
	for _, m := range invoiceModels {
		model := m
		invoices = append(invoices, invoiceToEntity(&model))
	}
	return invoices, nil
}

// UpdateStatus moves an invoice to a new status; PAID also stamps paid_at
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvoiceStatus) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if status == entities.InvoicePaid {
		updates["paid_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountForYear counts invoices issued in a calendar year
func (r *InvoiceRepository) CountForYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("issued_at >= ? AND issued_at < ?", start, end).
		Count(&count).Error
	return count, err
}

func invoiceToEntity(m *models.Invoice) *entities.Invoice {
	return &entities.Invoice{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		ServiceRecordID: m.ServiceRecordID,
		Number:          m.Number,
		Subtotal:        m.Subtotal,
		TaxRate:         m.TaxRate,
		TaxAmount:       m.TaxAmount,
		Total:           m.Total,
		Status:          entities.InvoiceStatus(m.Status),
		IssuedAt:        m.IssuedAt,
		PaidAt:          null.TimeFromPtr(m.PaidAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
