package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/model"
)

type feedbackFixture struct {
	service    *FeedbackService
	feedback   *fakeFeedbackStore
	complaints *fakeComplaintStore

	owner       uuid.UUID
	complaintID uuid.UUID
}

func newFeedbackFixture(t *testing.T, status model.ComplaintStatus) *feedbackFixture {
	t.Helper()

	f := &feedbackFixture{
		feedback:   newFakeFeedbackStore(),
		complaints: newFakeComplaintStore(),
		owner:      uuid.New(),
	}

	complaint := &model.Complaint{
		ID:            uuid.New(),
		Title:         "Pothole",
		Status:        status,
		SubmittedByID: f.owner,
	}
	require.NoError(t, f.complaints.Create(complaint))
	f.complaintID = complaint.ID

	f.service = NewFeedbackService(f.feedback, f.complaints)
	return f
}

func TestSubmitFeedback(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusResolved)

	comments := "Fixed quickly, thanks"
	feedback, err := f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{
		Rating:   5,
		Comments: &comments,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, feedback.Rating)
	assert.Equal(t, f.owner, feedback.SubmittedByID)
}

func TestSubmitFeedback_OnClosedComplaint(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusClosed)

	_, err := f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{Rating: 3})
	assert.NoError(t, err)
}

func TestSubmitFeedback_RatingBounds(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusResolved)

	for _, rating := range []int{0, -1, 6} {
		_, err := f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidArgument, "rating %d", rating)
	}
}

func TestSubmitFeedback_OnlyTheSubmitter(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusResolved)

	_, err := f.service.Submit(citizenClaim(uuid.New()), f.complaintID, &model.SubmitFeedbackRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitFeedback_OnlyOnceResolved(t *testing.T) {
	for _, status := range []model.ComplaintStatus{
		model.StatusSubmitted, model.StatusInReview, model.StatusAssigned, model.StatusInProgress,
	} {
		f := newFeedbackFixture(t, status)
		_, err := f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{Rating: 4})
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestSubmitFeedback_Duplicate(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusResolved)

	_, err := f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{Rating: 5})
	require.NoError(t, err)

	_, err = f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrDuplicateFeedback)
}

func TestSubmitFeedback_DuplicateRace(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusResolved)

	// The existence pre-check passed but the unique index caught the write.
	f.feedback.createErr = &pq.Error{Code: "23505"}

	_, err := f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrDuplicateFeedback)
}

func TestSubmitFeedback_UnknownComplaint(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusResolved)

	_, err := f.service.Submit(citizenClaim(f.owner), uuid.New(), &model.SubmitFeedbackRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFeedback(t *testing.T) {
	f := newFeedbackFixture(t, model.StatusResolved)

	_, err := f.service.Submit(citizenClaim(f.owner), f.complaintID, &model.SubmitFeedbackRequest{Rating: 5})
	require.NoError(t, err)

	listed, err := f.service.ListByComplaint(citizenClaim(f.owner), f.complaintID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// Another citizen has no access to it.
	_, err = f.service.ListByComplaint(citizenClaim(uuid.New()), f.complaintID)
	assert.ErrorIs(t, err, ErrForbidden)

	adminListed, err := f.service.ListByComplaint(adminClaim(), f.complaintID)
	require.NoError(t, err)
	assert.Len(t, adminListed, 1)
}
