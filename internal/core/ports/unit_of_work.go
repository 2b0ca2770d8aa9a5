package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary spanning users,
// orders and the order event outbox. Client code manages the transaction
// lifecycle explicitly; Commit also stores the domain events of every order
// touched through OrderRepository.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit writes pending outbox events and commits the transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction. Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error

	// UserRepository returns a repository bound to the current transaction.
	UserRepository() UserRepository

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
