package auth

import "complaint-service/internal/model"

// Action names an operation a caller may attempt against the core.
type Action string

const (
	ActionCreateComplaint Action = "complaint.create"
	ActionViewComplaint   Action = "complaint.view"
	ActionEditComplaint   Action = "complaint.edit"
	ActionCancelComplaint Action = "complaint.cancel"
	ActionTransition      Action = "complaint.transition"
	ActionAssign          Action = "complaint.assign"
	ActionRespond         Action = "complaint.respond"
	ActionAttach          Action = "attachment.attach"
	ActionSubmitFeedback  Action = "feedback.submit"
	ActionProvisionAgency Action = "agency.provision"
	ActionManageCategory  Action = "category.manage"
)

// Ownership describes the caller's relation to the target resource.
// Owner means the caller submitted (or uploaded) it; AgencyMatch means the
// caller administers the agency the resource is assigned to, or, for assign,
// the agency being targeted.
type Ownership struct {
	Owner       bool
	AgencyMatch bool
}

// Allowed is the single capability decision table. Every role/action pair not
// granted here is denied. Status-dependent rules (edit only while submitted,
// feedback only once resolved) belong to the owning service; this table is a
// pure function of role, action and ownership.
func Allowed(claim IdentityClaim, action Action, own Ownership) bool {
	if !claim.Active() {
		return false
	}

	switch claim.Role {
	case model.RoleAdmin:
		return true

	case model.RoleOfficial:
		switch action {
		case ActionViewComplaint, ActionTransition, ActionAssign, ActionRespond, ActionAttach:
			return own.AgencyMatch
		}
		return false

	case model.RoleCitizen:
		switch action {
		case ActionCreateComplaint:
			return true
		case ActionViewComplaint, ActionEditComplaint, ActionCancelComplaint,
			ActionSubmitFeedback, ActionAttach:
			return own.Owner
		}
		return false
	}

	return false
}
