package repositories

import (
	"context"
	"testing"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedWarranty(t *testing.T, repo *WarrantyRepository, vehicleID uuid.UUID, expiresAt time.Time) *entities.Warranty {
	t.Helper()
	w := &entities.Warranty{
		VehicleID:    vehicleID,
		Type:         entities.WarrantyManufacturer,
		StartsAt:     expiresAt.AddDate(-3, 0, 0),
		ExpiresAt:    expiresAt,
		MileageLimit: 60000,
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), w))
	return w
}

func TestWarrantyRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createWarrantyTable(t, db)
	repo := NewWarrantyRepository(db)
	ctx := context.Background()

	w := seedWarranty(t, repo, uuid.New(), time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, entities.WarrantyManufacturer, got.Type)
	require.Equal(t, 60000, got.MileageLimit)
	require.True(t, got.Active)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWarrantyRepository_ListByVehicle(t *testing.T) {
	db := newTestDB(t)
	createWarrantyTable(t, db)
	repo := NewWarrantyRepository(db)
	ctx := context.Background()

	vehicleID := uuid.New()
	seedWarranty(t, repo, vehicleID, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	longest := seedWarranty(t, repo, vehicleID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	seedWarranty(t, repo, uuid.New(), time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC))

	warranties, err := repo.ListByVehicle(ctx, vehicleID)
	require.NoError(t, err)
	require.Len(t, warranties, 2)
	// Longest-running coverage first.
	require.Equal(t, longest.ID, warranties[0].ID)
}

func TestWarrantyRepository_Deactivate(t *testing.T) {
	db := newTestDB(t)
	createWarrantyTable(t, db)
	repo := NewWarrantyRepository(db)
	ctx := context.Background()

	w := seedWarranty(t, repo, uuid.New(), time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Deactivate(ctx, w.ID))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.False(t, got.Active)

	require.ErrorIs(t, repo.Deactivate(ctx, uuid.New()), domainerrors.ErrNotFound)
}
