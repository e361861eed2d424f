package service

import (
	"time"

	"github.com/google/uuid"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
)

type FeedbackStore interface {
	Create(feedback *model.Feedback) error
	Exists(complaintID, submitterID uuid.UUID) (bool, error)
	FindByComplaint(complaintID uuid.UUID) ([]model.Feedback, error)
}

// FeedbackService guards feedback submission: only the complaint's submitter,
// only once the complaint is resolved or closed, and at most once per
// complaint.
type FeedbackService struct {
	feedback   FeedbackStore
	complaints ComplaintStore
}

func NewFeedbackService(feedback FeedbackStore, complaints ComplaintStore) *FeedbackService {
	return &FeedbackService{
		feedback:   feedback,
		complaints: complaints,
	}
}

func (s *FeedbackService) Submit(claim auth.IdentityClaim, complaintID uuid.UUID, req *model.SubmitFeedbackRequest) (*model.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidArgument
	}

	complaint, err := s.complaints.FindByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	own := auth.Ownership{Owner: complaint.SubmittedByID == claim.UserID}
	if !auth.Allowed(claim, auth.ActionSubmitFeedback, own) {
		return nil, ErrForbidden
	}
	if claim.Role == model.RoleCitizen && !own.Owner {
		return nil, ErrForbidden
	}

	if complaint.Status != model.StatusResolved && complaint.Status != model.StatusClosed {
		return nil, ErrInvalidTransition
	}

	exists, err := s.feedback.Exists(complaintID, claim.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateFeedback
	}

	feedback := &model.Feedback{
		ID:            uuid.New(),
		Rating:        req.Rating,
		Comments:      req.Comments,
		ComplaintID:   complaintID,
		SubmittedByID: claim.UserID,
		CreatedAt:     time.Now(),
	}

	if err := s.feedback.Create(feedback); err != nil {
		// Two concurrent submissions can both pass the Exists check; the
		// unique index catches the loser.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateFeedback
		}
		return nil, err
	}

	return feedback, nil
}

func (s *FeedbackService) ListByComplaint(claim auth.IdentityClaim, complaintID uuid.UUID) ([]model.Feedback, error) {
	complaint, err := s.complaints.FindByID(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, ErrNotFound
	}

	own := auth.Ownership{Owner: complaint.SubmittedByID == claim.UserID}
	if claim.Role == model.RoleCitizen && !own.Owner {
		return nil, ErrForbidden
	}

	feedbacks, err := s.feedback.FindByComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if feedbacks == nil {
		feedbacks = []model.Feedback{}
	}
	return feedbacks, nil
}
