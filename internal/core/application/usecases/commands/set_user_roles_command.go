package commands

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"
	"travelagency/internal/pkg/guard"
)

var ErrSetUserRolesCommandIsNotConstructed = errors.New(
	"SetUserRolesCommand must be created via NewSetUserRolesCommand constructor",
)

// SetUserRolesCommand grants or revokes the agent and admin flags.
type SetUserRolesCommand struct {
	principal access.Principal
	userID    kernel.UUID
	isAgent   *bool
	isAdmin   *bool

	guard guard.ConstructorGuard
}

// NewSetUserRolesCommand requires at least one flag.
func NewSetUserRolesCommand(principal access.Principal, userID kernel.UUID, isAgent, isAdmin *bool) (SetUserRolesCommand, error) {
	if err := errors.Join(principal.Validate(), userID.Validate()); err != nil {
		return SetUserRolesCommand{}, err
	}
	if isAgent == nil && isAdmin == nil {
		return SetUserRolesCommand{}, errs.NewValueIsRequiredError("isAgent or isAdmin")
	}

	return SetUserRolesCommand{
		principal: principal,
		userID:    userID,
		isAgent:   isAgent,
		isAdmin:   isAdmin,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetUserRolesCommand) Principal() access.Principal {
	return c.principal
}

func (c SetUserRolesCommand) UserID() kernel.UUID {
	return c.userID
}

func (c SetUserRolesCommand) IsAgent() *bool {
	return c.isAgent
}

func (c SetUserRolesCommand) IsAdmin() *bool {
	return c.isAdmin
}

func (c SetUserRolesCommand) Validate() error {
	return c.guard.Validate(ErrSetUserRolesCommandIsNotConstructed)
}
