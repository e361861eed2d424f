package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"complaint-service/internal/messaging"
	"complaint-service/internal/model"
)

// NotificationStore is the persistence surface the dispatcher needs.
type NotificationStore interface {
	Create(notification *model.Notification) error
	GetByRecipient(userID uuid.UUID) ([]model.Notification, error)
	GetUnreadCount(userID uuid.UUID) (int, error)
	MarkAsRead(id, userID uuid.UUID) error
	MarkAllAsRead(userID uuid.UUID) error
}

// OutboxStore queues a delivery event durably alongside the notification row.
type OutboxStore interface {
	Create(routingKey string, payload interface{}) error
}

// NotificationService derives notification records from lifecycle events.
// It never notifies the actor who triggered the event, and its failures are
// surfaced as warnings: the triggering state change is already committed.
type NotificationService struct {
	notifications NotificationStore
	outbox        OutboxStore
}

func NewNotificationService(notifications NotificationStore, outbox OutboxStore) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		outbox:        outbox,
	}
}

// NotifyStatusChanged records an in-app notification to the submitter for a
// completed status transition.
func (s *NotificationService) NotifyStatusChanged(complaint *model.Complaint, from, to model.ComplaintStatus, actorID uuid.UUID) error {
	if complaint.SubmittedByID == actorID {
		return nil
	}

	message := fmt.Sprintf("Your complaint %q moved from %s to %s", complaint.Title, from, to)
	return s.dispatch(complaint, complaint.SubmittedByID, message, false, messaging.RoutingKeyStatusChanged)
}

// NotifyAssigned records an action-required notification to the administrator
// of the agency the complaint was just routed to.
func (s *NotificationService) NotifyAssigned(complaint *model.Complaint, agency *model.Agency, actorID uuid.UUID) error {
	if agency.AdministratorID == actorID {
		return nil
	}

	message := fmt.Sprintf("Complaint %q was assigned to %s", complaint.Title, agency.Name)
	return s.dispatch(complaint, agency.AdministratorID, message, true, messaging.RoutingKeyAssigned)
}

// NotifyResponseAdded records a notification to the submitter for a new
// official response.
func (s *NotificationService) NotifyResponseAdded(complaint *model.Complaint, actorID uuid.UUID) error {
	if complaint.SubmittedByID == actorID {
		return nil
	}

	message := fmt.Sprintf("A new response was added to your complaint %q", complaint.Title)
	return s.dispatch(complaint, complaint.SubmittedByID, message, false, messaging.RoutingKeyResponseAdded)
}

// dispatch persists the notification row and queues its delivery event.
// Both writes happen before the triggering call returns; any failure is
// wrapped as a non-fatal dispatch warning.
func (s *NotificationService) dispatch(complaint *model.Complaint, recipientID uuid.UUID,
	message string, actionRequired bool, routingKey string) error {

	notification := &model.Notification{
		ID:             uuid.New(),
		Type:           model.NotificationInApp,
		Message:        message,
		RecipientID:    recipientID,
		ComplaintID:    complaint.ID,
		IsRead:         false,
		ActionRequired: actionRequired,
		CreatedAt:      time.Now(),
	}

	if err := s.notifications.Create(notification); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationDispatch, err)
	}

	event := messaging.NotificationQueuedMessage{
		NotificationID: notification.ID.String(),
		RecipientID:    recipientID.String(),
		ComplaintID:    complaint.ID.String(),
		Type:           string(notification.Type),
		Message:        message,
		ActionRequired: actionRequired,
		Timestamp:      time.Now().Unix(),
	}
	if err := s.outbox.Create(routingKey, event); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationDispatch, err)
	}

	return nil
}

func (s *NotificationService) GetUserNotifications(userID uuid.UUID) (*model.NotificationListResponse, error) {
	notifications, err := s.notifications.GetByRecipient(userID)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}

	unreadCount, err := s.notifications.GetUnreadCount(userID)
	if err != nil {
		return nil, err
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unreadCount,
	}, nil
}

func (s *NotificationService) MarkAsRead(notificationID, userID uuid.UUID) error {
	return s.notifications.MarkAsRead(notificationID, userID)
}

func (s *NotificationService) MarkAllAsRead(userID uuid.UUID) error {
	return s.notifications.MarkAllAsRead(userID)
}
