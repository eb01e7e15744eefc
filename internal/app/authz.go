package app

import (
	"fmt"

	"github.com/campusconnect/campus-api/internal/domain"
)

// requireRole checks that the actor is valid and holds one of the given roles.
func requireRole(actor domain.Actor, roles ...domain.Role) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return fmt.Errorf("role %q may not perform this operation: %w", actor.Role, domain.ErrForbidden)
}

// isPrivileged reports whether the actor holds a role that sees and manages
// every item regardless of ownership.
func isPrivileged(actor domain.Actor) bool {
	return actor.Role == domain.RoleStaff || actor.Role == domain.RoleModerator
}
