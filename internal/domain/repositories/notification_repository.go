package repositories

import (
	"context"

	"autoserve.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Notification, error)
	ListPending(ctx context.Context, limit int) ([]*entities.Notification, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}
