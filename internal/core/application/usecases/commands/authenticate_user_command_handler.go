package commands

import (
	"context"
	"errors"

	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/ports"
	"travelagency/internal/pkg/errs"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// Both cases look the same to the caller.
var ErrInvalidCredentials = errs.NewUnauthenticatedError("invalid email or password")

// UserFinder looks users up by email. ports.UserRepository satisfies it.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// AuthenticateUserCommandHandler verifies credentials and issues a token
// carrying the user id and role flags.
type AuthenticateUserCommandHandler struct {
	users  UserFinder
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
}

func NewAuthenticateUserCommandHandler(
	users UserFinder,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
) AuthenticateUserCommandHandler {
	return AuthenticateUserCommandHandler{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Handle returns the signed token.
func (h AuthenticateUserCommandHandler) Handle(ctx context.Context, cmd AuthenticateUserCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	u, err := h.users.GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err = h.hasher.Compare(u.PasswordHash(), cmd.Password()); err != nil {
		return "", ErrInvalidCredentials
	}

	return h.tokens.Issue(u)
}
