package repository

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"complaint-service/internal/model"
)

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create relies on the unique (complaint_id, submitted_by_id) index to catch
// duplicate submissions that race past the Exists check.
func (r *FeedbackRepository) Create(feedback *model.Feedback) error {
	query := `
		INSERT INTO feedback (id, rating, comments, complaint_id, submitted_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		feedback.ID,
		feedback.Rating,
		feedback.Comments,
		feedback.ComplaintID,
		feedback.SubmittedByID,
		feedback.CreatedAt,
	)
	return err
}

func (r *FeedbackRepository) Exists(complaintID, submitterID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM feedback WHERE complaint_id = $1 AND submitted_by_id = $2)`
	var exists bool
	err := r.db.QueryRow(query, complaintID, submitterID).Scan(&exists)
	return exists, err
}

func (r *FeedbackRepository) FindByComplaint(complaintID uuid.UUID) ([]model.Feedback, error) {
	query := `
		SELECT id, rating, comments, complaint_id, submitted_by_id, created_at
		FROM feedback WHERE complaint_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []model.Feedback
	for rows.Next() {
		feedback := model.Feedback{}
		var comments sql.NullString
		err := rows.Scan(
			&feedback.ID,
			&feedback.Rating,
			&comments,
			&feedback.ComplaintID,
			&feedback.SubmittedByID,
			&feedback.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if comments.Valid {
			feedback.Comments = &comments.String
		}
		feedbacks = append(feedbacks, feedback)
	}
	return feedbacks, rows.Err()
}
