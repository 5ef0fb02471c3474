package repositories

import (
	"context"
	"time"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	List(ctx context.Context) ([]*entities.ApiKey, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
}
