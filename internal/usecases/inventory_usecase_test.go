package usecases_test

import (
	"context"
	"testing"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/usecases"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInventoryUsecase_CreatePart_DuplicateSKU(t *testing.T) {
	mockRepo := new(MockInventoryRepository)
	uc := usecases.NewInventoryUsecase(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetBySKU", ctx, "FLT-001").Return(&entities.InventoryPart{ID: uuid.New()}, nil)

	_, err := uc.CreatePart(ctx, &entities.CreatePartInput{SKU: "FLT-001", Name: "Oil Filter"})

	assert.Equal(t, 409, appStatus(t, err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInventoryUsecase_AdjustStock(t *testing.T) {
	mockRepo := new(MockInventoryRepository)
	uc := usecases.NewInventoryUsecase(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(&entities.InventoryPart{
		ID:           id,
		SKU:          "FLT-001",
		Quantity:     6,
		ReorderLevel: 5,
	}, nil)
	mockRepo.On("AdjustStock", ctx, id, -2).Return(nil)

	part, err := uc.AdjustStock(ctx, id, -2)

	require.NoError(t, err)
	assert.Equal(t, "FLT-001", part.SKU)
	mockRepo.AssertExpectations(t)
}

func TestInventoryUsecase_AdjustStock_ZeroDelta(t *testing.T) {
	mockRepo := new(MockInventoryRepository)
	uc := usecases.NewInventoryUsecase(mockRepo)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, uuid.New(), 0)

	assert.Equal(t, 400, appStatus(t, err))
	mockRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryUsecase_AdjustStock_InsufficientStock(t *testing.T) {
	mockRepo := new(MockInventoryRepository)
	uc := usecases.NewInventoryUsecase(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(&entities.InventoryPart{ID: id, Quantity: 1}, nil)
	mockRepo.On("AdjustStock", ctx, id, -5).Return(domainerrors.ErrNotFound)

	// The conditional update refusing the movement means there was not
	// enough stock, not that the part vanished.
	_, err := uc.AdjustStock(ctx, id, -5)

	assert.Equal(t, 409, appStatus(t, err))
}
