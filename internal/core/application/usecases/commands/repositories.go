// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management and persistence.
package commands

import (
	"context"

	"travelagency/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Handlers depend on the narrowest one that covers the aggregates they touch.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// UserRepoFactory provides access to user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UserUoW manages transactions for user-only operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW manages transactions across both user and order aggregates, for
	// commands that snapshot a user into an order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   customer, err := uow.UserRepository().Get(ctx, principal.UserID())
	//   // ... build the order
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
