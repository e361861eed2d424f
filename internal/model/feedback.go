package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is unique per (complaint, submitter); the citizen who submitted a
// complaint may rate its handling at most once.
type Feedback struct {
	ID            uuid.UUID `json:"id"`
	Rating        int       `json:"rating"`
	Comments      *string   `json:"comments,omitempty"`
	ComplaintID   uuid.UUID `json:"complaint_id"`
	SubmittedByID uuid.UUID `json:"submitted_by_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type SubmitFeedbackRequest struct {
	Rating   int     `json:"rating" binding:"required"`
	Comments *string `json:"comments"`
}
