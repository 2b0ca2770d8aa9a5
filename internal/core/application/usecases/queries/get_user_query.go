package queries

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery reads one user profile.
type GetUserQuery struct {
	principal access.Principal
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUserQuery(principal access.Principal, userID kernel.UUID) (GetUserQuery, error) {
	if err := errors.Join(principal.Validate(), userID.Validate()); err != nil {
		return GetUserQuery{}, err
	}

	return GetUserQuery{
		principal: principal,
		userID:    userID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetUserQuery) Principal() access.Principal {
	return q.principal
}

func (q GetUserQuery) UserID() kernel.UUID {
	return q.userID
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}
