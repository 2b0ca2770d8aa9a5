package access

import (
	"fmt"
	"strings"

	"travelagency/internal/pkg/errs"
)

// Role is a capability tier. Higher values take precedence.
type Role int

const (
	// UnknownRole is the zero value and is never granted.
	UnknownRole Role = iota
	Customer
	Agent
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Customer:    "Customer",
		Agent:       "Agent",
		Admin:       "Admin",
	}
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

func (r Role) Validate() error {
	if r < Customer || r > Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// RoleSet is an immutable set of roles that always contains Customer.
type RoleSet struct {
	bits uint8
}

// NewRoleSet builds the role set implied by the stored user flags.
func NewRoleSet(isAgent, isAdmin bool) RoleSet {
	rs := RoleSet{}.with(Customer)
	if isAgent {
		rs = rs.with(Agent)
	}
	if isAdmin {
		rs = rs.with(Admin)
	}
	return rs
}

func (rs RoleSet) with(r Role) RoleSet {
	return RoleSet{bits: rs.bits | 1<<uint(r)}
}

// Has reports whether r is in the set.
func (rs RoleSet) Has(r Role) bool {
	if r.Validate() != nil {
		return false
	}
	return rs.bits&(1<<uint(r)) != 0
}

// Highest returns the role with the greatest precedence.
func (rs RoleSet) Highest() Role {
	for r := Admin; r >= Customer; r-- {
		if rs.Has(r) {
			return r
		}
	}
	return UnknownRole
}

// IsStaff is true for agents and admins.
func (rs RoleSet) IsStaff() bool {
	return rs.Has(Agent) || rs.Has(Admin)
}

// Roles lists the members in ascending precedence.
func (rs RoleSet) Roles() []Role {
	roles := make([]Role, 0, 3)
	for r := Customer; r <= Admin; r++ {
		if rs.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

func (rs RoleSet) String() string {
	names := make([]string, 0, 3)
	for _, r := range rs.Roles() {
		names = append(names, r.String())
	}
	return strings.Join(names, ",")
}
