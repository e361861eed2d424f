package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationEmail NotificationType = "email"
	NotificationInApp NotificationType = "in-app"
	NotificationSMS   NotificationType = "SMS"
)

type Notification struct {
	ID             uuid.UUID        `json:"id"`
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
	RecipientID    uuid.UUID        `json:"recipient_id"`
	ComplaintID    uuid.UUID        `json:"complaint_id"`
	IsRead         bool             `json:"is_read"`
	ActionRequired bool             `json:"action_required"`
	CreatedAt      time.Time        `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
