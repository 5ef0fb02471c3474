package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NotificationChannel is the delivery channel
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSMS   NotificationChannel = "SMS"
)

// NotificationStatus is the delivery state
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "PENDING"
	NotificationSent    NotificationStatus = "SENT"
	NotificationFailed  NotificationStatus = "FAILED"
)

// Notification represents a queued customer notification. Dispatch transport
// is out of scope; rows are enqueued here and marked once delivered.
type Notification struct {
	ID         uuid.UUID           `json:"id"`
	CustomerID uuid.UUID           `json:"customerId"`
	Channel    NotificationChannel `json:"channel"`
	Subject    string              `json:"subject"`
	Body       string              `json:"body"`
	Status     NotificationStatus  `json:"status"`
	SentAt     null.Time           `json:"sentAt"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}
