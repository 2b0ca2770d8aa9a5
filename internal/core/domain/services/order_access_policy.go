package services

import (
	"fmt"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/pkg/errs"
)

// OrderUpdateMode selects which field set a caller may edit on an order.
type OrderUpdateMode int

const (
	// UpdateDenied means the caller may not edit the order at all.
	UpdateDenied OrderUpdateMode = iota

	// UpdateAsOwner limits the edit to flight, return flight, passengers and notes.
	UpdateAsOwner

	// UpdateAsStaff allows every booking field including status and price.
	UpdateAsStaff
)

// OrderAccessPolicy answers authorization questions about orders.
//
// Rules, with Admin > Agent > Customer precedence:
//   - Admins may do anything and bypass lifecycle restrictions
//   - Agents may read and list every order and edit the booking fields of any
//     order as staff
//   - Only the assigned agent may change the status, along the transition table
//   - Owners may read their order, edit it while it waits for an agent, accept
//     or decline an offer and cancel an order nobody picked up yet
type OrderAccessPolicy struct{}

func NewOrderAccessPolicy() OrderAccessPolicy {
	return OrderAccessPolicy{}
}

// CanRead allows the owner and any staff member.
func (OrderAccessPolicy) CanRead(p access.Principal, o *order.Order) error {
	if p.IsStaff() || o.IsOwnedBy(p.UserID()) {
		return nil
	}
	return errs.NewAccessDeniedError("you are not authorized to view this order")
}

// CanListAll allows staff only.
func (OrderAccessPolicy) CanListAll(p access.Principal) error {
	if p.IsStaff() {
		return nil
	}
	return errs.NewAccessDeniedError("you are not authorized to view orders")
}

// UpdateMode picks the field set the caller may edit. Staff wins over
// ownership. The returned bypass flag is set for admins.
func (OrderAccessPolicy) UpdateMode(p access.Principal, o *order.Order) (mode OrderUpdateMode, bypass bool, err error) {
	switch {
	case p.IsStaff():
		return UpdateAsStaff, p.IsAdmin(), nil
	case o.IsOwnedBy(p.UserID()):
		return UpdateAsOwner, false, nil
	default:
		return UpdateDenied, false, errs.NewAccessDeniedError("you are not authorized to update this order")
	}
}

// CanAssignAgent allows admins only.
func (OrderAccessPolicy) CanAssignAgent(p access.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return errs.NewAccessDeniedError("only admins can assign agents")
}

// AuthorizeStatusChange decides whether p may move o to next and whether the
// lifecycle table is bypassed.
func (OrderAccessPolicy) AuthorizeStatusChange(p access.Principal, o *order.Order, next order.Status) (bypass bool, err error) {
	switch {
	case p.IsAdmin():
		return true, nil
	case p.IsAgent() && o.IsAssignedTo(p.UserID()):
		return false, nil
	case o.IsOwnedBy(p.UserID()):
		if ownerMayMove(o.Status(), next) {
			return false, nil
		}
		return false, errs.NewAccessDeniedErrorWithCause(
			"change order status",
			fmt.Errorf("owner cannot move order from %s to %s", o.Status(), next),
		)
	default:
		return false, errs.NewAccessDeniedError("you are not authorized to update this order")
	}
}

// CanDelete allows admins only. It does not need the order, so denial happens
// before any lookup.
func (OrderAccessPolicy) CanDelete(p access.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return errs.NewAccessDeniedError("you are not authorized to delete orders")
}

func ownerMayMove(from, to order.Status) bool {
	switch from {
	case order.PendingCustomerApproval:
		return to == order.Confirmed || to == order.Cancelled
	case order.WaitForAgent:
		return to == order.Cancelled
	default:
		return false
	}
}
