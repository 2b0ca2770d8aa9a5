package access

import (
	"errors"

	"travelagency/internal/core/domain/model/kernel"
)

// ErrPrincipalIsNotConstructed is returned when validating a zero Principal.
var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal")

// Principal is the authenticated caller of a use case.
type Principal struct {
	userID kernel.UUID
	roles  RoleSet
}

// NewPrincipal binds a verified user id to the roles granted by its token.
func NewPrincipal(userID kernel.UUID, isAgent, isAdmin bool) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, err
	}
	return Principal{userID: userID, roles: NewRoleSet(isAgent, isAdmin)}, nil
}

func (p Principal) UserID() kernel.UUID {
	return p.userID
}

func (p Principal) Roles() RoleSet {
	return p.roles
}

func (p Principal) IsAdmin() bool {
	return p.roles.Has(Admin)
}

func (p Principal) IsAgent() bool {
	return p.roles.Has(Agent)
}

// IsStaff is true for agents and admins.
func (p Principal) IsStaff() bool {
	return p.roles.IsStaff()
}

// Is reports whether the principal acts for the given user.
func (p Principal) Is(userID kernel.UUID) bool {
	return p.userID.IsEqual(userID)
}

func (p Principal) Validate() error {
	if p.userID.Validate() != nil || !p.roles.Has(Customer) {
		return ErrPrincipalIsNotConstructed
	}
	return nil
}
