package commands

import (
	"context"
	"errors"
	"time"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/ports"
	"travelagency/internal/pkg/errs"
)

// RegisterUserCommandHandler registers new customers.
//
// Email and phone uniqueness is pre-checked; the store's unique indexes catch
// concurrent registrations.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle hashes the password and stores the user. A taken email or phone
// yields errs.AlreadyExistsError.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(
		kernel.NewUUID(),
		cmd.Name(),
		cmd.Phone(),
		cmd.Email(),
		hash,
		cmd.Address(),
		cmd.Passport(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	if err = ensureContactsAvailable(ctx, userRepo, u, true, true); err != nil {
		return nil, err
	}

	if err = userRepo.Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

// ensureContactsAvailable fails when another user already holds u's email or
// phone. Only the flagged fields are checked.
func ensureContactsAvailable(ctx context.Context, repo ports.UserRepository, u *user.User, checkEmail, checkPhone bool) error {
	if checkEmail {
		existing, err := repo.GetByEmail(ctx, u.Email())
		switch {
		case err == nil && !existing.ID().IsEqual(u.ID()):
			return errs.NewAlreadyExistsError("user", "")
		case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}
	}

	if checkPhone {
		existing, err := repo.GetByPhone(ctx, u.Phone())
		switch {
		case err == nil && !existing.ID().IsEqual(u.ID()):
			return errs.NewAlreadyExistsError("user", "phone number is already registered")
		case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}
	}

	return nil
}
