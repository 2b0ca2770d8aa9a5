package order_test

import (
	"fmt"
	"testing"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, []order.Status{
		order.WaitForAgent,
		order.InProgress,
		order.PendingCustomerApproval,
		order.Confirmed,
		order.Cancelled,
	}, order.AllStatuses())
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.AllStatuses() {
		require.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(6)} {
		err := s.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Equal(t, "Unknown", s.String())
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("accepts compact and spaced forms", func(t *testing.T) {
		tests := map[string]order.Status{
			"WaitForAgent":              order.WaitForAgent,
			"Wait For Agent":            order.WaitForAgent,
			"InProgress":                order.InProgress,
			"In Progress":               order.InProgress,
			"pending customer approval": order.PendingCustomerApproval,
			"Confirmed":                 order.Confirmed,
			" Cancelled ":               order.Cancelled,
		}

		for raw, want := range tests {
			got, err := order.ParseStatus(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("rejects legacy and unknown labels", func(t *testing.T) {
		for _, raw := range []string{"Send To Agent", "Pending Agent Approval", "Unknown", "", "Done"} {
			_, err := order.ParseStatus(raw)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.WaitForAgent:            {order.WaitForAgent, order.InProgress, order.Cancelled},
		order.InProgress:              {order.WaitForAgent, order.InProgress, order.PendingCustomerApproval, order.Cancelled},
		order.PendingCustomerApproval: {order.InProgress, order.PendingCustomerApproval, order.Confirmed, order.Cancelled},
		order.Confirmed:               {},
		order.Cancelled:               {},
	}

	for from, targets := range allowed {
		for _, to := range order.AllStatuses() {
			assert.Equal(t, contains(targets, to), from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, order.Unknown.CanTransitionTo(order.InProgress))
	assert.False(t, order.WaitForAgent.CanTransitionTo(order.Unknown))
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("allowed transition", func(t *testing.T) {
		next, err := order.WaitForAgent.TransitionTo(order.InProgress, false)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, next)
	})

	t.Run("disallowed transition is an access denial", func(t *testing.T) {
		_, err := order.WaitForAgent.TransitionTo(order.Confirmed, false)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Contains(t, err.Error(), "WaitForAgent to Confirmed")
	})

	t.Run("terminal statuses are frozen", func(t *testing.T) {
		_, err := order.Confirmed.TransitionTo(order.Cancelled, false)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("bypass allows any valid status", func(t *testing.T) {
		next, err := order.Cancelled.TransitionTo(order.WaitForAgent, true)

		require.NoError(t, err)
		assert.Equal(t, order.WaitForAgent, next)
	})

	t.Run("bypass still rejects unknown status", func(t *testing.T) {
		_, err := order.InProgress.TransitionTo(order.Unknown, true)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	tests := []struct {
		status  order.Status
		agent   bool
		wantErr bool
	}{
		{order.WaitForAgent, false, false},
		{order.WaitForAgent, true, true},
		{order.InProgress, true, false},
		{order.InProgress, false, true},
		{order.PendingCustomerApproval, true, false},
		{order.PendingCustomerApproval, false, true},
		{order.Confirmed, true, false},
		{order.Confirmed, false, false},
		{order.Cancelled, true, false},
		{order.Cancelled, false, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s agent=%t", tt.status, tt.agent), func(t *testing.T) {
			err := tt.status.ValidateCanHaveAgent(tt.agent)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func contains(list []order.Status, s order.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
