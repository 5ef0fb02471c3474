package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// invoiceTransitions defines the allowed invoice status moves
var invoiceTransitions = map[entities.InvoiceStatus][]entities.InvoiceStatus{
	entities.InvoiceDraft:  {entities.InvoiceIssued, entities.InvoiceVoid},
	entities.InvoiceIssued: {entities.InvoicePaid, entities.InvoiceVoid},
}

// InvoiceUsecase issues and settles invoices for completed service work.
// Numbers are sequential per calendar year in the form INV-YYYY-NNNN.
type InvoiceUsecase struct {
	invoiceRepo   repositories.InvoiceRepository
	recordRepo    repositories.ServiceRecordRepository
	bookingRepo   repositories.BookingRepository
	notifications *NotificationUsecase
}

// NewInvoiceUsecase creates a new invoice usecase
func NewInvoiceUsecase(
	invoiceRepo repositories.InvoiceRepository,
	recordRepo repositories.ServiceRecordRepository,
	bookingRepo repositories.BookingRepository,
	notifications *NotificationUsecase,
) *InvoiceUsecase {
	return &InvoiceUsecase{
		invoiceRepo:   invoiceRepo,
		recordRepo:    recordRepo,
		bookingRepo:   bookingRepo,
		notifications: notifications,
	}
}

// IssueInvoice creates and issues an invoice from a completed service
// record. The subtotal comes from the record; tax and total are computed
// here, never accepted from the client.
func (u *InvoiceUsecase) IssueInvoice(ctx context.Context, input *entities.CreateInvoiceInput) (*entities.Invoice, error) {
	recordID, err := uuid.Parse(input.ServiceRecordID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid service record id")
	}

	record, err := u.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("service record not found")
		}
		return nil, err
	}
	if !record.CompletedAt.Valid {
		return nil, domainerrors.BadRequest("service record is not completed")
	}

	booking, err := u.bookingRepo.GetByID(ctx, record.BookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	number, err := u.nextNumber(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	invoice := &entities.Invoice{
		CustomerID:      booking.CustomerID,
		ServiceRecordID: record.ID,
		Number:          number,
		Subtotal:        record.TotalCost,
		TaxRate:         input.TaxRate,
		Status:          entities.InvoiceIssued,
		IssuedAt:        now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	invoice.ComputeTotals()

	if err := u.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if u.notifications != nil {
		u.notifications.Enqueue(ctx, booking.CustomerID, entities.ChannelEmail,
			fmt.Sprintf("Invoice %s", invoice.Number),
			fmt.Sprintf("Your invoice %s for %.2f has been issued.", invoice.Number, invoice.Total))
	}

	return invoice, nil
}

// GetInvoice fetches one invoice
func (u *InvoiceUsecase) GetInvoice(ctx context.Context, id uuid.UUID) (*entities.Invoice, error) {
	invoice, err := u.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("invoice not found")
		}
		return nil, err
	}
	return invoice, nil
}

// ListByCustomer lists a customer's invoices
func (u *InvoiceUsecase) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Invoice, error) {
	return u.invoiceRepo.ListByCustomer(ctx, customerID)
}

// TransitionStatus moves an invoice along its lifecycle; PAID and VOID are
// terminal
func (u *InvoiceUsecase) TransitionStatus(ctx context.Context, id uuid.UUID, next entities.InvoiceStatus) (*entities.Invoice, error) {
	invoice, err := u.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, s := range invoiceTransitions[invoice.Status] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domainerrors.BadRequest(
			fmt.Sprintf("cannot transition invoice from %s to %s", invoice.Status, next))
	}

	if err := u.invoiceRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return u.GetInvoice(ctx, id)
}

// nextNumber allocates the next sequential number for the year. Concurrent
// issuance can race on the count; the unique index on number turns the
// loser into a retryable conflict instead of a duplicate.
func (u *InvoiceUsecase) nextNumber(ctx context.Context, year int) (string, error) {
	count, err := u.invoiceRepo.CountForYear(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", year, count+1), nil
}
