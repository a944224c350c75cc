package domain

import "fmt"

// Role is the closed set of actor roles. Authorization gates compare roles by
// exact equality; there is no hierarchy and no inheritance.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleCentre    Role = "centre"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a wire string into a Role. Unknown strings are rejected
// so that a value outside the closed set can never satisfy a role gate.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleApplicant, RoleCentre, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleCentre, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
