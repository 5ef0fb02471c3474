package repositories

import (
	"context"
	"time"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
