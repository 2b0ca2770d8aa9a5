package order

import (
	"errors"
	"strings"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"
)

// Party is the snapshot of a user copied into an order when it becomes the
// customer or the agent. Later profile changes do not propagate.
type Party struct {
	Number kernel.UUID
	Name   string
	Email  string
	Phone  string
}

func NewParty(number kernel.UUID, name, email, phone string) (Party, error) {
	p := Party{
		Number: number,
		Name:   strings.TrimSpace(name),
		Email:  strings.TrimSpace(email),
		Phone:  strings.TrimSpace(phone),
	}
	if err := p.Validate(); err != nil {
		return Party{}, err
	}
	return p, nil
}

func (p Party) Validate() error {
	var err error
	if p.Number.Validate() != nil {
		err = errs.NewValueIsRequiredError("number")
	}
	if p.Name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	return err
}

// Is reports whether the snapshot was taken from the given user.
func (p Party) Is(userID kernel.UUID) bool {
	return p.Number.IsEqual(userID)
}
