package repositories

import (
	"context"
	"time"

	"autoserve.backend/internal/domain/entities"
	domainerrors "autoserve.backend/internal/domain/errors"
	"autoserve.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// NotificationRepository implements the notification queue
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create enqueues a notification
func (r *NotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	m := &models.Notification{
		ID:         notification.ID,
		CustomerID: notification.CustomerID,
		Channel:    string(notification.Channel),
		Subject:    notification.Subject,
		Body:       notification.Body,
		Status:     string(notification.Status),
		CreatedAt:  notification.CreatedAt,
		UpdatedAt:  notification.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// ListByCustomer lists a customer's notifications, newest first
func (r *NotificationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Notification, error) {
	var notificationModels []models.Notification
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&notificationModels).Error
	if err != nil {
		return nil, err
	}
	return notificationsToEntities(notificationModels), nil
}

// ListPending lists queued notifications oldest first
func (r *NotificationRepository) ListPending(ctx context.Context, limit int) ([]*entities.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", string(entities.NotificationPending)).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notificationModels []models.Notification
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}
	return notificationsToEntities(notificationModels), nil
}

// MarkSent marks a notification delivered
func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, entities.NotificationSent, true)
}

// MarkFailed marks a delivery failure
func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, entities.NotificationFailed, false)
}

func (r *NotificationRepository) setStatus(ctx context.Context, id uuid.UUID, status entities.NotificationStatus, stampSent bool) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if stampSent {
		updates["sent_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func notificationsToEntities(notificationModels []models.Notification) []*entities.Notification {
	var notifications []*entities.Notification
	for _, m := range notificationModels {
		model := m
		notifications = append(notifications, &entities.Notification{
			ID:         model.ID,
			CustomerID: model.CustomerID,
			Channel:    entities.NotificationChannel(model.Channel),
			Subject:    model.Subject,
			Body:       model.Body,
			Status:     entities.NotificationStatus(model.Status),
			SentAt:     null.TimeFromPtr(model.SentAt),
			CreatedAt:  model.CreatedAt,
			UpdatedAt:  model.UpdatedAt,
		})
	}
	return notifications
}
