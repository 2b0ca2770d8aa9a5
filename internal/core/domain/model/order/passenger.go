package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"travelagency/internal/pkg/errs"
)

// Gender of a passenger as printed on the booking.
type Gender int

const (
	UnknownGender Gender = iota
	Male
	Female
	Other
	PreferNotToSay
)

func getGenderStrings() map[Gender]string {
	return map[Gender]string{
		UnknownGender:  "Unknown",
		Male:           "Male",
		Female:         "Female",
		Other:          "Other",
		PreferNotToSay: "Prefer not to say",
	}
}

// ParseGender accepts the exact labels Male, Female, Other and
// "Prefer not to say".
func ParseGender(raw string) (Gender, error) {
	trimmed := strings.TrimSpace(raw)
	for g, s := range getGenderStrings() {
		if g != UnknownGender && s == trimmed {
			return g, nil
		}
	}
	return UnknownGender, errs.NewValueIsInvalidErrorWithCause("gender", fmt.Errorf("%q is not a valid gender", raw))
}

func (g Gender) String() string {
	if s, ok := getGenderStrings()[g]; ok {
		return s
	}
	return "Unknown"
}

func (g Gender) Validate() error {
	if g < Male || g > PreferNotToSay {
		return errs.NewValueIsInvalidErrorWithCause("gender", fmt.Errorf("%d is not a valid gender", g))
	}
	return nil
}

// Passenger is a traveller on the booking. PassportDate is optional.
type Passenger struct {
	FirstName      string
	LastName       string
	PassportNumber string
	Nationality    string
	DateOfBirth    time.Time
	Gender         Gender
	PassportDate   *time.Time
}

// NewPassenger trims the text fields and validates the passenger.
func NewPassenger(
	firstName, lastName, passportNumber, nationality string,
	dateOfBirth time.Time,
	gender Gender,
	passportDate *time.Time,
) (Passenger, error) {
	p := Passenger{
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		PassportNumber: strings.TrimSpace(passportNumber),
		Nationality:    strings.TrimSpace(nationality),
		DateOfBirth:    dateOfBirth.UTC(),
		Gender:         gender,
	}
	if passportDate != nil {
		d := passportDate.UTC()
		p.PassportDate = &d
	}
	if err := p.Validate(); err != nil {
		return Passenger{}, err
	}
	return p, nil
}

func (p Passenger) Validate() error {
	var err error
	required := []struct{ param, value string }{
		{"passengers.firstName", p.FirstName},
		{"passengers.lastName", p.LastName},
		{"passengers.passportNumber", p.PassportNumber},
		{"passengers.nationality", p.Nationality},
	}
	for _, r := range required {
		if r.value == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(r.param))
		}
	}
	if p.DateOfBirth.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("passengers.dateOfBirth"))
	}
	return errors.Join(err, p.Gender.Validate())
}
