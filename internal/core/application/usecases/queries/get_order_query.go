package queries

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads a single order.
//
// Example:
//
//	query, err := NewGetOrderQuery(principal, orderID)
//	o, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrAccessDenied) {
//	    // caller is neither the owner nor staff
//	}
type GetOrderQuery struct {
	principal access.Principal
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(principal access.Principal, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Principal() access.Principal {
	return q.principal
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}
