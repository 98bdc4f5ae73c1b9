// Package access maps an actor's role to the capabilities that gate every
// employee operation.
package access

import (
	"errors"
	"fmt"
)

// Role is the role assigned to an authenticated user.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RolePengelola  Role = "pengelola"
	RoleUser       Role = "user"
)

// ErrUnknownRole is returned by ParseRole for values outside the closed role set.
var ErrUnknownRole = errors.New("unknown role")

// Roles returns every known role, most privileged first.
func Roles() []Role {
	return []Role{RoleSuperadmin, RoleAdmin, RolePengelola, RoleUser}
}

// ParseRole converts an external role string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RolePengelola, RoleUser:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// CanView reports whether the role may read employee records.
func CanView(r Role) bool {
	return r.Valid()
}

// CanEdit reports whether the role may create and update employee records.
func CanEdit(r Role) bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RolePengelola:
		return true
	}
	return false
}

// CanManage reports whether the role may delete employee records.
func CanManage(r Role) bool {
	switch r {
	case RoleSuperadmin, RoleAdmin:
		return true
	}
	return false
}

// CapabilitySet is the flag set handed to clients so they can show or hide actions.
type CapabilitySet struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// Capabilities evaluates all three predicates for r.
func Capabilities(r Role) CapabilitySet {
	return CapabilitySet{
		Create: CanEdit(r),
		Edit:   CanEdit(r),
		Delete: CanManage(r),
	}
}
