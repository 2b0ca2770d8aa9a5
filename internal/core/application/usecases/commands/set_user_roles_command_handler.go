package commands

import (
	"context"

	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/domain/services"
)

// SetUserRolesCommandHandler flips role flags. Admins only; the check runs
// before the user is loaded.
type SetUserRolesCommandHandler struct {
	uowFactory UserUoWFactory
	policy     services.UserAccessPolicy
}

func NewSetUserRolesCommandHandler(uowFactory UserUoWFactory) SetUserRolesCommandHandler {
	return SetUserRolesCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewUserAccessPolicy(),
	}
}

func (h SetUserRolesCommandHandler) Handle(ctx context.Context, cmd SetUserRolesCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanSetRoles(cmd.Principal()); err != nil {
		return nil, err
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

	u.SetRoles(cmd.IsAgent(), cmd.IsAdmin())

	if err = userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
