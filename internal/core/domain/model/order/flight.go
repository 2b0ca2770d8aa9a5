package order

import (
	"errors"
	"strings"
	"time"

	"travelagency/internal/pkg/errs"
)

// Flight is one leg of a booking. From, To and Date are required.
type Flight struct {
	From   string
	To     string
	Date   time.Time
	Time   string
	Number string
}

// NewFlight trims the text fields and validates the leg.
func NewFlight(from, to string, date time.Time, departure, number string) (Flight, error) {
	f := Flight{
		From:   strings.TrimSpace(from),
		To:     strings.TrimSpace(to),
		Date:   date.UTC(),
		Time:   strings.TrimSpace(departure),
		Number: strings.TrimSpace(number),
	}
	if err := f.Validate(); err != nil {
		return Flight{}, err
	}
	return f, nil
}

func (f Flight) Validate() error {
	var err error
	if f.From == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("flight.flightFrom"))
	}
	if f.To == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("flight.flightTo"))
	}
	if f.Date.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("flight.flightDate"))
	}
	return err
}

// FlightPatch holds a partial flight update. Nil fields keep their value.
type FlightPatch struct {
	From   *string
	To     *string
	Date   *time.Time
	Time   *string
	Number *string
}

// Apply returns f with the patch applied and validates the result.
func (f Flight) Apply(p FlightPatch) (Flight, error) {
	next := f
	if p.From != nil {
		next.From = *p.From
	}
	if p.To != nil {
		next.To = *p.To
	}
	if p.Date != nil {
		next.Date = *p.Date
	}
	if p.Time != nil {
		next.Time = *p.Time
	}
	if p.Number != nil {
		next.Number = *p.Number
	}
	return NewFlight(next.From, next.To, next.Date, next.Time, next.Number)
}
