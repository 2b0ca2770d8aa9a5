package services_test

import (
	"testing"
	"time"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/services"
	"travelagency/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cast struct {
	owner    access.Principal
	stranger access.Principal
	agent    access.Principal
	assigned access.Principal
	admin    access.Principal
}

func newCast(t *testing.T) cast {
	t.Helper()
	mk := func(isAgent, isAdmin bool) access.Principal {
		p, err := access.NewPrincipal(kernel.NewUUID(), isAgent, isAdmin)
		require.NoError(t, err)
		return p
	}
	return cast{
		owner:    mk(false, false),
		stranger: mk(false, false),
		agent:    mk(true, false),
		assigned: mk(true, false),
		admin:    mk(false, true),
	}
}

func orderFor(t *testing.T, c cast, status order.Status) *order.Order {
	t.Helper()
	customer, err := order.NewParty(c.owner.UserID(), "Ada Lovelace", "ada@example.com", "0501234567")
	require.NoError(t, err)
	agent, err := order.NewParty(c.assigned.UserID(), "Bob Agent", "bob@example.com", "0507654321")
	require.NoError(t, err)
	flight, err := order.NewFlight("SFO", "JFK", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "", "")
	require.NoError(t, err)
	passenger, err := order.NewPassenger("Ada", "Lovelace", "P1", "GB", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), order.Female, nil)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), customer, &agent, time.Now(), flight, nil, status, 0, []order.Passenger{passenger}, "", 1)
	require.NoError(t, err)
	return o
}

func TestOrderAccessPolicy_CanRead(t *testing.T) {
	c := newCast(t)
	o := orderFor(t, c, order.WaitForAgent)
	policy := services.NewOrderAccessPolicy()

	require.NoError(t, policy.CanRead(c.owner, o))
	require.NoError(t, policy.CanRead(c.agent, o))
	require.NoError(t, policy.CanRead(c.admin, o))
	require.ErrorIs(t, policy.CanRead(c.stranger, o), errs.ErrAccessDenied)
}

func TestOrderAccessPolicy_CanListAll(t *testing.T) {
	c := newCast(t)
	policy := services.NewOrderAccessPolicy()

	require.NoError(t, policy.CanListAll(c.agent))
	require.NoError(t, policy.CanListAll(c.admin))
	require.ErrorIs(t, policy.CanListAll(c.owner), errs.ErrAccessDenied)
}

func TestOrderAccessPolicy_UpdateMode(t *testing.T) {
	c := newCast(t)
	o := orderFor(t, c, order.WaitForAgent)
	policy := services.NewOrderAccessPolicy()

	tests := []struct {
		name      string
		principal access.Principal
		mode      services.OrderUpdateMode
		bypass    bool
		denied    bool
	}{
		{"owner", c.owner, services.UpdateAsOwner, false, false},
		{"agent", c.agent, services.UpdateAsStaff, false, false},
		{"admin", c.admin, services.UpdateAsStaff, true, false},
		{"stranger", c.stranger, services.UpdateDenied, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, bypass, err := policy.UpdateMode(tt.principal, o)

			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.bypass, bypass)
			if tt.denied {
				require.ErrorIs(t, err, errs.ErrAccessDenied)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOrderAccessPolicy_AuthorizeStatusChange(t *testing.T) {
	c := newCast(t)
	policy := services.NewOrderAccessPolicy()

	tests := []struct {
		name      string
		principal access.Principal
		from      order.Status
		to        order.Status
		bypass    bool
		denied    bool
	}{
		{"admin bypasses", c.admin, order.Confirmed, order.InProgress, true, false},
		{"assigned agent follows table", c.assigned, order.InProgress, order.PendingCustomerApproval, false, false},
		{"other agent is denied", c.agent, order.InProgress, order.PendingCustomerApproval, false, true},
		{"owner confirms offer", c.owner, order.PendingCustomerApproval, order.Confirmed, false, false},
		{"owner declines offer", c.owner, order.PendingCustomerApproval, order.Cancelled, false, false},
		{"owner cancels waiting order", c.owner, order.WaitForAgent, order.Cancelled, false, false},
		{"owner cannot start work", c.owner, order.WaitForAgent, order.InProgress, false, true},
		{"owner cannot cancel in progress", c.owner, order.InProgress, order.Cancelled, false, true},
		{"stranger is denied", c.stranger, order.PendingCustomerApproval, order.Confirmed, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := orderFor(t, c, tt.from)

			bypass, err := policy.AuthorizeStatusChange(tt.principal, o, tt.to)

			assert.Equal(t, tt.bypass, bypass)
			if tt.denied {
				require.ErrorIs(t, err, errs.ErrAccessDenied)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOrderAccessPolicy_AdminOnlyOperations(t *testing.T) {
	c := newCast(t)
	policy := services.NewOrderAccessPolicy()

	require.NoError(t, policy.CanAssignAgent(c.admin))
	require.ErrorIs(t, policy.CanAssignAgent(c.agent), errs.ErrAccessDenied)

	require.NoError(t, policy.CanDelete(c.admin))
	require.ErrorIs(t, policy.CanDelete(c.owner), errs.ErrAccessDenied)
	require.ErrorIs(t, policy.CanDelete(c.agent), errs.ErrAccessDenied)
}
