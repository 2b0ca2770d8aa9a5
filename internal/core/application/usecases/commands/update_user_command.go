package commands

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/guard"
)

var ErrUpdateUserCommandIsNotConstructed = errors.New(
	"UpdateUserCommand must be created via NewUpdateUserCommand constructor",
)

// UserProfileInput carries the optional fields of a profile update. The
// password is plain text; the handler hashes it.
type UserProfileInput struct {
	Name     *user.NamePatch
	Phone    *string
	Email    *string
	Password *string
	Address  *user.AddressPatch
	Passport *user.PassportPatch
}

// UpdateUserCommand edits a user's profile on behalf of principal.
type UpdateUserCommand struct {
	principal access.Principal
	userID    kernel.UUID
	input     UserProfileInput

	guard guard.ConstructorGuard
}

func NewUpdateUserCommand(principal access.Principal, userID kernel.UUID, input UserProfileInput) (UpdateUserCommand, error) {
	if err := errors.Join(principal.Validate(), userID.Validate()); err != nil {
		return UpdateUserCommand{}, err
	}

	return UpdateUserCommand{
		principal: principal,
		userID:    userID,
		input:     input,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateUserCommand) Principal() access.Principal {
	return c.principal
}

func (c UpdateUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateUserCommand) Input() UserProfileInput {
	return c.input
}

func (c UpdateUserCommand) Validate() error {
	return c.guard.Validate(ErrUpdateUserCommandIsNotConstructed)
}
