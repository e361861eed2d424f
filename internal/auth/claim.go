package auth

import (
	"github.com/google/uuid"

	"complaint-service/internal/model"
)

// IdentityClaim is the verified identity handed to every core operation.
// It is built from an already-validated token; services never read ambient
// request state.
type IdentityClaim struct {
	UserID uuid.UUID
	Role   model.Role
	Status model.UserStatus
}

func (c IdentityClaim) Active() bool {
	return c.Status == model.UserActive
}
