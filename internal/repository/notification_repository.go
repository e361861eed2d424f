package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	query := `
		INSERT INTO notifications (id, type, message, recipient_id, complaint_id, is_read, action_required, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(query,
		notification.ID,
		notification.Type,
		notification.Message,
		notification.RecipientID,
		notification.ComplaintID,
		notification.IsRead,
		notification.ActionRequired,
		notification.CreatedAt,
	)
	return err
}

func (r *NotificationRepository) GetByRecipient(userID uuid.UUID) ([]model.Notification, error) {
	query := `
		SELECT id, type, message, recipient_id, complaint_id, is_read, action_required, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n := model.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.Message,
			&n.RecipientID,
			&n.ComplaintID,
			&n.IsRead,
			&n.ActionRequired,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) GetUnreadCount(userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *NotificationRepository) MarkAsRead(id, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`
	_, err := r.db.Exec(query, id, userID)
	return err
}

func (r *NotificationRepository) MarkAllAsRead(userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE recipient_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

// Delivery idempotency: the consumer records every handled bus message id so
// redeliveries are dropped.
func (r *NotificationRepository) IsMessageProcessed(messageID string) (bool, error) {
	query := `SELECT 1 FROM processed_messages WHERE message_id = $1`
	var exists int
	err := r.db.QueryRow(query, messageID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *NotificationRepository) MarkMessageProcessed(messageID string) error {
	query := `INSERT INTO processed_messages (message_id, processed_at) VALUES ($1, $2) ON CONFLICT (message_id) DO NOTHING`
	_, err := r.db.Exec(query, messageID, time.Now())
	return err
}
