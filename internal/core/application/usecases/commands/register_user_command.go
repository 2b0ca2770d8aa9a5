package commands

import (
	"errors"
	"strings"

	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/errs"
	"travelagency/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates a customer account. Role flags are never taken
// from registration input.
//
// Example:
//
//	name, _ := user.NewName("Ada", "", "Lovelace")
//	cmd, err := NewRegisterUserCommand(name, "0501234567", "ada@example.com", "s3cret!", nil, nil)
//	u, err := handler.Handle(ctx, cmd)
type RegisterUserCommand struct {
	name     user.Name
	phone    string
	email    string
	password string
	address  *user.Address
	passport *user.Passport

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand checks that the credentials are present; the rest is
// validated by the User aggregate.
func NewRegisterUserCommand(
	name user.Name,
	phone string,
	email string,
	password string,
	address *user.Address,
	passport *user.Passport,
) (RegisterUserCommand, error) {
	if strings.TrimSpace(email) == "" {
		return RegisterUserCommand{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return RegisterUserCommand{}, errs.NewValueIsRequiredError("password")
	}

	return RegisterUserCommand{
		name:     name,
		phone:    phone,
		email:    email,
		password: password,
		address:  address,
		passport: passport,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Name() user.Name {
	return c.name
}

func (c RegisterUserCommand) Phone() string {
	return c.phone
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c RegisterUserCommand) Address() *user.Address {
	return c.address
}

func (c RegisterUserCommand) Passport() *user.Passport {
	return c.passport
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}
