package domain

// Role is the permission class of a caller. Roles are minted by the external
// identity provider; this service only gates operations on them.
type Role string

const (
	RoleStudent   Role = "student"
	RoleStaff     Role = "staff"
	RoleModerator Role = "moderator"
)

// IsValid returns true if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleModerator:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Actor identifies the caller of a mutating operation. ID and Role arrive
// from the identity boundary (trusted headers); the service never
// authenticates users itself.
type Actor struct {
	ID   string
	Role Role
}

// Validate checks that the actor carries a usable identity.
func (a Actor) Validate() error {
	fields := make(map[string]string)
	if a.ID == "" {
		fields["actor_id"] = MsgRequired
	}
	if !a.Role.IsValid() {
		fields["actor_role"] = "invalid: " + string(a.Role)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
