package commands

import (
	"context"

	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/domain/services"
)

// DeleteUserCommandHandler deletes accounts. Only the user themself or an
// admin may do so; the check runs before any lookup.
type DeleteUserCommandHandler struct {
	uowFactory UserUoWFactory
	policy     services.UserAccessPolicy
}

func NewDeleteUserCommandHandler(uowFactory UserUoWFactory) DeleteUserCommandHandler {
	return DeleteUserCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewUserAccessPolicy(),
	}
}

// Handle returns the deleted user.
func (h DeleteUserCommandHandler) Handle(ctx context.Context, cmd DeleteUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanDelete(cmd.Principal(), cmd.UserID()); err != nil {
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

	if err = userRepo.Delete(ctx, u.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
