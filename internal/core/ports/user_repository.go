package ports

import (
	"context"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user. A taken email or phone yields
	// errs.AlreadyExistsError.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes with a compare-and-swap on the version, like
	// OrderRepository.Update. A taken email or phone yields
	// errs.AlreadyExistsError.
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns the user or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks a user up by normalized email or returns
	// errs.ObjectNotFoundError.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetByPhone looks a user up by phone or returns errs.ObjectNotFoundError.
	GetByPhone(ctx context.Context, phone string) (*user.User, error)

	// Delete removes the user or returns errs.ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.UUID) error
}
