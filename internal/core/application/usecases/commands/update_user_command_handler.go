package commands

import (
	"context"

	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/domain/services"
	"travelagency/internal/core/ports"
)

// UpdateUserCommandHandler edits profiles. The user themself, agents and
// admins may edit; a new password is hashed before it is stored.
type UpdateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	policy     services.UserAccessPolicy
}

func NewUpdateUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) UpdateUserCommandHandler {
	return UpdateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		policy:     services.NewUserAccessPolicy(),
	}
}

// Handle returns the updated user. An email or phone owned by another user
// yields errs.AlreadyExistsError.
func (h UpdateUserCommandHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanUpdateProfile(cmd.Principal(), cmd.UserID()); err != nil {
		return nil, err
	}

	input := cmd.Input()
	changes := user.ProfileChanges{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		Passport: input.Passport,
	}
	if input.Password != nil {
		hash, err := h.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	u, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	checkEmail := input.Email != nil && u.EmailChanged(*input.Email)
	checkPhone := input.Phone != nil && u.PhoneChanged(*input.Phone)

	if err = u.UpdateProfile(changes); err != nil {
		return nil, err
	}

	if err = ensureContactsAvailable(ctx, userRepo, u, checkEmail, checkPhone); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
