package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"complaint-service/internal/model"
)

func TestValidateTransition_ForwardOrder(t *testing.T) {
	steps := []struct {
		from model.ComplaintStatus
		to   model.ComplaintStatus
	}{
		{model.StatusSubmitted, model.StatusInReview},
		{model.StatusInReview, model.StatusAssigned},
		{model.StatusAssigned, model.StatusInProgress},
		{model.StatusInProgress, model.StatusResolved},
		{model.StatusResolved, model.StatusClosed},
	}

	for _, step := range steps {
		assert.NoError(t, validateTransition(model.RoleOfficial, step.from, step.to),
			"official %s -> %s", step.from, step.to)
		assert.NoError(t, validateTransition(model.RoleAdmin, step.from, step.to),
			"admin %s -> %s", step.from, step.to)
	}
}

func TestValidateTransition_ClosedIsTerminal(t *testing.T) {
	targets := []model.ComplaintStatus{
		model.StatusSubmitted, model.StatusInReview, model.StatusAssigned,
		model.StatusInProgress, model.StatusResolved,
	}

	for _, to := range targets {
		for _, role := range []model.Role{model.RoleCitizen, model.RoleOfficial, model.RoleAdmin} {
			err := validateTransition(role, model.StatusClosed, to)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s closed -> %s", role, to)
		}
	}
}

func TestValidateTransition_OfficialMayJump(t *testing.T) {
	assert.NoError(t, validateTransition(model.RoleOfficial, model.StatusSubmitted, model.StatusInProgress))
	assert.NoError(t, validateTransition(model.RoleOfficial, model.StatusResolved, model.StatusInProgress))
}

func TestValidateTransition_CloseRequiresResolved(t *testing.T) {
	err := validateTransition(model.RoleOfficial, model.StatusInProgress, model.StatusClosed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The administrative override.
	assert.NoError(t, validateTransition(model.RoleAdmin, model.StatusInProgress, model.StatusClosed))
	assert.True(t, adminOverride(model.StatusInProgress, model.StatusClosed))
	assert.False(t, adminOverride(model.StatusResolved, model.StatusClosed))
}

func TestValidateTransition_SelfTransitionRejected(t *testing.T) {
	err := validateTransition(model.RoleAdmin, model.StatusInReview, model.StatusInReview)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	err := validateTransition(model.RoleAdmin, model.StatusSubmitted, model.ComplaintStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
