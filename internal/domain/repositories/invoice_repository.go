package repositories

import (
	"context"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entities.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Invoice, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvoiceStatus) error
	// CountForYear supports sequential invoice numbering per year
	CountForYear(ctx context.Context, year int) (int64, error)
}
