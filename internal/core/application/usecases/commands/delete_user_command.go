package commands

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/guard"
)

var ErrDeleteUserCommandIsNotConstructed = errors.New(
	"DeleteUserCommand must be created via NewDeleteUserCommand constructor",
)

// DeleteUserCommand removes a user account. Orders keep their snapshots.
type DeleteUserCommand struct {
	principal access.Principal
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteUserCommand(principal access.Principal, userID kernel.UUID) (DeleteUserCommand, error) {
	if err := errors.Join(principal.Validate(), userID.Validate()); err != nil {
		return DeleteUserCommand{}, err
	}

	return DeleteUserCommand{
		principal: principal,
		userID:    userID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteUserCommand) Principal() access.Principal {
	return c.principal
}

func (c DeleteUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c DeleteUserCommand) Validate() error {
	return c.guard.Validate(ErrDeleteUserCommandIsNotConstructed)
}
