package commands

import (
	"errors"

	"travelagency/internal/core/domain/model/access"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand sets or clears the agent of an order. A nil agent id
// clears the assignment.
type AssignAgentCommand struct {
	principal access.Principal
	orderID   kernel.UUID
	agentID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignAgentCommand(principal access.Principal, orderID kernel.UUID, agentID *kernel.UUID) (AssignAgentCommand, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate()); err != nil {
		return AssignAgentCommand{}, err
	}
	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return AssignAgentCommand{}, err
		}
	}

	return AssignAgentCommand{
		principal: principal,
		orderID:   orderID,
		agentID:   agentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignAgentCommand) Principal() access.Principal {
	return c.principal
}

func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the agent to assign or nil to clear.
func (c AssignAgentCommand) AgentID() *kernel.UUID {
	return c.agentID
}

func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}
