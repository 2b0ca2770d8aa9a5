package order

import (
	"fmt"
	"strings"

	"travelagency/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Status is a value object. The zero value Unknown is never valid; values
// coming from storage or requests must pass Validate or come from ParseStatus.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// WaitForAgent is the initial status. The order waits for an admin to
	// assign an agent and is still editable by its owner.
	WaitForAgent

	// InProgress means an agent is working on the booking.
	InProgress

	// PendingCustomerApproval means the agent has made an offer the customer
	// must confirm or cancel.
	PendingCustomerApproval

	// Confirmed is terminal: the booking is done.
	Confirmed

	// Cancelled is terminal: the booking was abandoned.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                 "Unknown",
		WaitForAgent:            "WaitForAgent",
		InProgress:              "InProgress",
		PendingCustomerApproval: "PendingCustomerApproval",
		Confirmed:               "Confirmed",
		Cancelled:               "Cancelled",
	}
}

// getTransitions lists, per status, the statuses a non-admin caller may move
// an order to.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown and terminal statuses have no transitions
	return map[Status][]Status{
		WaitForAgent:            {InProgress, Cancelled},
		InProgress:              {WaitForAgent, PendingCustomerApproval, Cancelled},
		PendingCustomerApproval: {InProgress, Confirmed, Cancelled},
	}
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{WaitForAgent, InProgress, PendingCustomerApproval, Confirmed, Cancelled}
}

// ParseStatus reads the wire form of a status. Both the compact form
// ("WaitForAgent") and the spaced form ("Wait For Agent") are accepted, in any
// letter case. Labels of the retired four-state lifecycle such as
// "Send To Agent" are rejected.
func ParseStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	for _, s := range AllStatuses() {
		if strings.ToLower(s.String()) == key {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"orderStatus",
		fmt.Errorf("%q is not a valid status", raw),
	)
}

// Validate checks that s is one of the five lifecycle statuses.
func (s Status) Validate() error {
	if s < WaitForAgent || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and returns the wire form.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further non-admin transitions exist.
func (s Status) IsTerminal() bool {
	return s == Confirmed || s == Cancelled
}

// CanTransitionTo reports whether a non-admin caller may move from s to next.
// Staying in the same non-terminal status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil || s.IsTerminal() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the transition table allows it. With bypass
// set (admin callers) any valid status is accepted.
// Disallowed transitions yield an errs.AccessDeniedError.
func (s Status) TransitionTo(next Status, bypass bool) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if bypass {
		return next, nil
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewAccessDeniedErrorWithCause(
			"change order status",
			fmt.Errorf("transition from %s to %s is not allowed", s, next),
		)
	}
	return next, nil
}

// ValidateCanHaveAgent checks that s agrees with the agent assignment.
// InProgress and PendingCustomerApproval need an agent, WaitForAgent must have
// none, and terminal statuses accept either.
func (s Status) ValidateCanHaveAgent(agent bool) error {
	if agent && s == WaitForAgent {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an agent", s),
		)
	}

	if !agent && (s == InProgress || s == PendingCustomerApproval) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no agent", s),
		)
	}

	return nil
}
