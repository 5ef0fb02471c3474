package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedInvoice(t *testing.T, repo *InvoiceRepository, customerID uuid.UUID, number string, issuedAt time.Time) *entities.Invoice {
	t.Helper()
	inv := &entities.Invoice{
		CustomerID:      customerID,
		ServiceRecordID: uuid.New(),
		Number:          number,
		Subtotal:        200,
		TaxRate:         0.1,
		TaxAmount:       20,
		Total:           220,
		Status:          entities.InvoiceIssued,
		IssuedAt:        issuedAt,
	}
	require.NoError(t, repo.Create(context.Background(), inv))
	return inv
}

func TestInvoiceRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createInvoiceTable(t, db)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	issuedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	inv := seedInvoice(t, repo, uuid.New(), "INV-2026-0001", issuedAt)

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, "INV-2026-0001", got.Number)
	require.Equal(t, entities.InvoiceIssued, got.Status)
	require.Equal(t, 220.0, got.Total)
	require.False(t, got.PaidAt.Valid)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestInvoiceRepository_UpdateStatus_PaidStampsPaidAt(t *testing.T) {
	db := newTestDB(t)
	createInvoiceTable(t, db)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	inv := seedInvoice(t, repo, uuid.New(), "INV-2026-0001", time.Now())

	require.NoError(t, repo.UpdateStatus(ctx, inv.ID, entities.InvoicePaid))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvoicePaid, got.Status)
	require.True(t, got.PaidAt.Valid)
	require.WithinDuration(t, time.Now(), got.PaidAt.Time, 5*time.Second)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.InvoiceVoid), domainerrors.ErrNotFound)
}

func TestInvoiceRepository_UpdateStatus_VoidLeavesPaidAtEmpty(t *testing.T) {
	db := newTestDB(t)
	createInvoiceTable(t, db)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	inv := seedInvoice(t, repo, uuid.New(), "INV-2026-0001", time.Now())
	require.NoError(t, repo.UpdateStatus(ctx, inv.ID, entities.InvoiceVoid))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvoiceVoid, got.Status)
	require.False(t, got.PaidAt.Valid)
}

func TestInvoiceRepository_ListByCustomer(t *testing.T) {
	db := newTestDB(t)
	createInvoiceTable(t, db)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	seedInvoice(t, repo, customerID, "INV-2026-0001", time.Now())
	seedInvoice(t, repo, customerID, "INV-2026-0002", time.Now())
	seedInvoice(t, repo, uuid.New(), "INV-2026-0003", time.Now())

	invoices, err := repo.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
}

func TestInvoiceRepository_CountForYear(t *testing.T) {
	db := newTestDB(t)
	createInvoiceTable(t, db)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedInvoice(t, repo, uuid.New(), fmt.Sprintf("INV-2026-%04d", i+1), time.Date(2026, time.Month(i+1), 10, 0, 0, 0, 0, time.UTC))
	}
	seedInvoice(t, repo, uuid.New(), "INV-2025-0001", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC))

	count, err := repo.CountForYear(ctx, 2026)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	count, err = repo.CountForYear(ctx, 2025)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = repo.CountForYear(ctx, 2024)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
