package commands

import (
	"errors"
	"strings"

	"travelagency/internal/pkg/errs"
	"travelagency/internal/pkg/guard"
)

var ErrAuthenticateUserCommandIsNotConstructed = errors.New(
	"AuthenticateUserCommand must be created via NewAuthenticateUserCommand constructor",
)

// AuthenticateUserCommand exchanges credentials for a bearer token.
type AuthenticateUserCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserCommand(email, password string) (AuthenticateUserCommand, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return AuthenticateUserCommand{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return AuthenticateUserCommand{}, errs.NewValueIsRequiredError("password")
	}

	return AuthenticateUserCommand{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AuthenticateUserCommand) Email() string {
	return c.email
}

func (c AuthenticateUserCommand) Password() string {
	return c.password
}

func (c AuthenticateUserCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateUserCommandIsNotConstructed)
}
