package queries

import (
	"context"

	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/core/domain/services"
)

// GetUserQueryHandler returns a profile to the user themself or to staff.
// Access is checked before the lookup, so strangers never learn whether the
// id exists.
type GetUserQueryHandler struct {
	users  UserReader
	policy services.UserAccessPolicy
}

func NewGetUserQueryHandler(users UserReader) GetUserQueryHandler {
	return GetUserQueryHandler{
		users:  users,
		policy: services.NewUserAccessPolicy(),
	}
}

func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (*user.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanRead(query.Principal(), query.UserID()); err != nil {
		return nil, err
	}

	return h.users.Get(ctx, query.UserID())
}
