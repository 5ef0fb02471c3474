package repositories

import (
	"context"
	"testing"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedPart(t *testing.T, repo *InventoryRepository, sku string, quantity, reorderLevel int) *entities.InventoryPart {
	t.Helper()
	p := &entities.InventoryPart{
		SKU:          sku,
		Name:         "Oil Filter",
		Quantity:     quantity,
		UnitPrice:    12.50,
		ReorderLevel: reorderLevel,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestInventoryRepository_CreateAndFinders(t *testing.T) {
	db := newTestDB(t)
	createInventoryTable(t, db)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	p := seedPart(t, repo, "FLT-001", 25, 5)
	seedPart(t, repo, "BRK-002", 8, 4)

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "FLT-001", byID.SKU)

	bySKU, err := repo.GetBySKU(ctx, "BRK-002")
	require.NoError(t, err)
	require.Equal(t, 8, bySKU.Quantity)

	parts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	// Ordered by SKU.
	require.Equal(t, "BRK-002", parts[0].SKU)

	_, err = repo.GetBySKU(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestInventoryRepository_AdjustStock(t *testing.T) {
	db := newTestDB(t)
	createInventoryTable(t, db)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	p := seedPart(t, repo, "FLT-001", 10, 5)

	require.NoError(t, repo.AdjustStock(ctx, p.ID, -4))
	require.NoError(t, repo.AdjustStock(ctx, p.ID, 2))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 8, got.Quantity)

	// Consuming more than is on hand is refused and leaves the row alone.
	require.ErrorIs(t, repo.AdjustStock(ctx, p.ID, -9), domainerrors.ErrNotFound)

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 8, got.Quantity)

	// Draining to exactly zero is allowed.
	require.NoError(t, repo.AdjustStock(ctx, p.ID, -8))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Quantity)

	require.ErrorIs(t, repo.AdjustStock(ctx, uuid.New(), 1), domainerrors.ErrNotFound)
}

func TestInventoryRepository_ListLowStock(t *testing.T) {
	db := newTestDB(t)
	createInventoryTable(t, db)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	seedPart(t, repo, "FLT-001", 25, 5)
	atLevel := seedPart(t, repo, "BRK-002", 4, 4)
	below := seedPart(t, repo, "SPK-003", 0, 2)

	parts, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	require.Equal(t, atLevel.ID, parts[0].ID)
	require.Equal(t, below.ID, parts[1].ID)
}
