package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"
)

// Name is a person's name. Middle is optional.
type Name struct {
	First  string
	Middle string
	Last   string
}

// NewName trims every part and requires first and last.
func NewName(first, middle, last string) (Name, error) {
	n := Name{
		First:  strings.TrimSpace(first),
		Middle: strings.TrimSpace(middle),
		Last:   strings.TrimSpace(last),
	}
	if err := n.Validate(); err != nil {
		return Name{}, err
	}
	return n, nil
}

func (n Name) Validate() error {
	return errors.Join(
		requireLength("name.first", n.First, 2, 255),
		optionalLength("name.middle", n.Middle, 2, 255),
		requireLength("name.last", n.Last, 2, 255),
	)
}

// Full joins first and last name; it is the form copied into order snapshots.
func (n Name) Full() string {
	return n.First + " " + n.Last
}

// NamePatch holds a partial name update. Nil fields keep their value.
type NamePatch struct {
	First  *string
	Middle *string
	Last   *string
}

// Apply returns n with the patch applied and validates the result.
func (n Name) Apply(p NamePatch) (Name, error) {
	next := n
	if p.First != nil {
		next.First = *p.First
	}
	if p.Middle != nil {
		next.Middle = *p.Middle
	}
	if p.Last != nil {
		next.Last = *p.Last
	}
	return NewName(next.First, next.Middle, next.Last)
}

// Address is a postal address. State and HouseNumber are optional.
type Address struct {
	Country     string
	State       string
	City        string
	Street      string
	HouseNumber *int
	Zip         int
}

func (a Address) Validate() error {
	return errors.Join(
		requireLength("address.country", a.Country, 2, 255),
		optionalLength("address.state", a.State, 2, 255),
		requireLength("address.city", a.City, 2, 255),
		requireLength("address.street", a.Street, 2, 255),
	)
}

// AddressPatch holds a partial address update. Nil fields keep their value.
type AddressPatch struct {
	Country     *string
	State       *string
	City        *string
	Street      *string
	HouseNumber *int
	Zip         *int
}

// Apply returns a with the patch applied and validates the result.
func (a Address) Apply(p AddressPatch) (Address, error) {
	next := a
	if p.Country != nil {
		next.Country = strings.TrimSpace(*p.Country)
	}
	if p.State != nil {
		next.State = strings.TrimSpace(*p.State)
	}
	if p.City != nil {
		next.City = strings.TrimSpace(*p.City)
	}
	if p.Street != nil {
		next.Street = strings.TrimSpace(*p.Street)
	}
	if p.HouseNumber != nil {
		n := *p.HouseNumber
		next.HouseNumber = &n
	}
	if p.Zip != nil {
		next.Zip = *p.Zip
	}
	if err := next.Validate(); err != nil {
		return Address{}, err
	}
	return next, nil
}

// Passport holds optional travel document details.
type Passport struct {
	Number  string
	Date    *time.Time
	Country *kernel.CountryCode
}

func (p Passport) Validate() error {
	if p.Country != nil {
		return p.Country.Validate()
	}
	return nil
}

// PassportPatch holds a partial passport update. Nil fields keep their value.
type PassportPatch struct {
	Number  *string
	Date    *time.Time
	Country *kernel.CountryCode
}

// Apply returns p with the patch applied and validates the result.
func (p Passport) Apply(patch PassportPatch) (Passport, error) {
	next := p
	if patch.Number != nil {
		next.Number = strings.TrimSpace(*patch.Number)
	}
	if patch.Date != nil {
		d := patch.Date.UTC()
		next.Date = &d
	}
	if patch.Country != nil {
		c := *patch.Country
		next.Country = &c
	}
	if err := next.Validate(); err != nil {
		return Passport{}, err
	}
	return next, nil
}

func requireLength(param, value string, minLen, maxLen int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return optionalLength(param, value, minLen, maxLen)
}

func optionalLength(param, value string, minLen, maxLen int) error {
	if value == "" {
		return nil
	}
	if n := utf8.RuneCountInString(value); n < minLen || n > maxLen {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			param, n, minLen, maxLen,
			fmt.Errorf("length of %s must be between %d and %d", param, minLen, maxLen),
		)
	}
	return nil
}
