package kernel

import (
	"fmt"

	"travelagency/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies users and orders. It wraps github.com/google/uuid so the
// domain never handles the nil UUID by accident.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical textual form. The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores an identifier stored in binary form.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID bytes: %w", err))
	}

	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped uuid.UUID for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
