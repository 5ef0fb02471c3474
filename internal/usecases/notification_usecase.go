package usecases

import (
	"context"
	"time"

	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/domain/repositories"
	"autoserve.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationUsecase manages the outbound notification queue. Enqueueing
// is best-effort from the caller's perspective: a failed enqueue is logged
// and never fails the business operation that triggered it.
type NotificationUsecase struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notificationRepo repositories.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notificationRepo: notificationRepo}
}

// Enqueue queues a notification for delivery
func (u *NotificationUsecase) Enqueue(ctx context.Context, customerID uuid.UUID, channel entities.NotificationChannel, subject, body string) {
	notification := &entities.Notification{
		CustomerID: customerID,
		Channel:    channel,
		Subject:    subject,
		Body:       body,
		Status:     entities.NotificationPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error(ctx, "failed to enqueue notification",
			zap.String("customer_id", customerID.String()),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

// ListByCustomer lists a customer's notifications
func (u *NotificationUsecase) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Notification, error) {
	return u.notificationRepo.ListByCustomer(ctx, customerID)
}

// ListPending lists queued notifications for a dispatcher to pick up
func (u *NotificationUsecase) ListPending(ctx context.Context, limit int) ([]*entities.Notification, error) {
	return u.notificationRepo.ListPending(ctx, limit)
}

// MarkSent records a successful delivery
func (u *NotificationUsecase) MarkSent(ctx context.Context, id uuid.UUID) error {
	return u.notificationRepo.MarkSent(ctx, id)
}

// MarkFailed records a delivery failure
func (u *NotificationUsecase) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return u.notificationRepo.MarkFailed(ctx, id)
}
