package services

import (
	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"
)

// UserAccessPolicy answers authorization questions about user records. None of
// its checks need the stored user, so they run before any lookup.
type UserAccessPolicy struct{}

func NewUserAccessPolicy() UserAccessPolicy {
	return UserAccessPolicy{}
}

// CanRead allows the user themself and staff.
func (UserAccessPolicy) CanRead(p access.Principal, userID kernel.UUID) error {
	if p.Is(userID) || p.IsStaff() {
		return nil
	}
	return errs.NewAccessDeniedError("you are not authorized to view this user")
}

// CanUpdateProfile allows the user themself and staff.
func (UserAccessPolicy) CanUpdateProfile(p access.Principal, userID kernel.UUID) error {
	if p.Is(userID) || p.IsStaff() {
		return nil
	}
	return errs.NewAccessDeniedError("you are not authorized to update this user")
}

// CanSetRoles allows admins only.
func (UserAccessPolicy) CanSetRoles(p access.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return errs.NewAccessDeniedError("only admins can change user roles")
}

// CanDelete allows the user themself and admins.
func (UserAccessPolicy) CanDelete(p access.Principal, userID kernel.UUID) error {
	if p.Is(userID) || p.IsAdmin() {
		return nil
	}
	return errs.NewAccessDeniedError("you are not authorized to delete this user")
}
