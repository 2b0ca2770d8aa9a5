package queries

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/pkg/guard"
)

var (
	ErrListMyOrdersQueryIsNotConstructed = errors.New(
		"ListMyOrdersQuery must be created via NewListMyOrdersQuery constructor",
	)
	ErrListAllOrdersQueryIsNotConstructed = errors.New(
		"ListAllOrdersQuery must be created via NewListAllOrdersQuery constructor",
	)
)

// ListMyOrdersQuery lists the orders the caller booked or works on.
type ListMyOrdersQuery struct {
	principal access.Principal

	guard guard.ConstructorGuard
}

func NewListMyOrdersQuery(principal access.Principal) (ListMyOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListMyOrdersQuery{}, err
	}

	return ListMyOrdersQuery{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListMyOrdersQuery) Principal() access.Principal {
	return q.principal
}

func (q ListMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListMyOrdersQueryIsNotConstructed)
}

// ListAllOrdersQuery lists every order. Staff only.
type ListAllOrdersQuery struct {
	principal access.Principal

	guard guard.ConstructorGuard
}

func NewListAllOrdersQuery(principal access.Principal) (ListAllOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListAllOrdersQuery{}, err
	}

	return ListAllOrdersQuery{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListAllOrdersQuery) Principal() access.Principal {
	return q.principal
}

func (q ListAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAllOrdersQueryIsNotConstructed)
}
