package commands

import (
	"context"
	"errors"
	"fmt"

	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/services"
	"travelagency/internal/pkg/errs"
)

// AssignAgentCommandHandler hands orders to agents.
//
// Business rules:
//   - Only admins assign, and they bypass the lifecycle restriction
//   - The agent must exist and hold the agent flag
//   - Assigning moves the order to InProgress; clearing moves it to WaitForAgent
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	policy     services.OrderAccessPolicy
}

func NewAssignAgentCommandHandler(uowFactory UoWFactory) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
	}
}

func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.CanAssignAgent(cmd.Principal()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var agent *order.Party
	if agentID := cmd.AgentID(); agentID != nil {
		u, getErr := uow.UserRepository().Get(ctx, *agentID)
		if errors.Is(getErr, errs.ErrObjectNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("agent", agentID.String(), getErr)
		}
		if getErr != nil {
			return nil, getErr
		}
		if !u.IsAgent() {
			return nil, errs.NewValueIsInvalidErrorWithCause("agent", fmt.Errorf("user %s is not an agent", agentID))
		}

		snapshot, snapErr := snapshotOf(u)
		if snapErr != nil {
			return nil, snapErr
		}
		agent = &snapshot
	}

	if err = o.AssignAgent(agent, cmd.Principal().IsAdmin()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
