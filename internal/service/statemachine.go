package service

import (
	"complaint-service/internal/model"
)

// statusOrder indexes the forward lifecycle. Closed is terminal: it has no
// outgoing transitions for any role.
var statusOrder = map[model.ComplaintStatus]int{
	model.StatusSubmitted:  0,
	model.StatusInReview:   1,
	model.StatusAssigned:   2,
	model.StatusInProgress: 3,
	model.StatusResolved:   4,
	model.StatusClosed:     5,
}

func validStatus(s model.ComplaintStatus) bool {
	_, ok := statusOrder[s]
	return ok
}

// validateTransition checks the from→to edge for an actor role. Officials and
// admins may move to any state, with two exceptions: nothing leaves closed,
// and closed is entered only from resolved unless the actor is an admin
// (the administrative override, logged by the caller). Anyone else only gets
// the immediate next state in the forward order.
func validateTransition(role model.Role, from, to model.ComplaintStatus) error {
	if !validStatus(to) {
		return ErrInvalidArgument
	}
	if from == model.StatusClosed {
		return ErrInvalidTransition
	}
	if to == from {
		return ErrInvalidTransition
	}

	if to == model.StatusClosed && from != model.StatusResolved && role != model.RoleAdmin {
		return ErrInvalidTransition
	}

	if role == model.RoleAdmin || role == model.RoleOfficial {
		return nil
	}

	if statusOrder[to] != statusOrder[from]+1 {
		return ErrInvalidTransition
	}
	return nil
}

// adminOverride reports whether closing from this state bypasses the normal
// resolved→closed edge.
func adminOverride(from, to model.ComplaintStatus) bool {
	return to == model.StatusClosed && from != model.StatusResolved
}
