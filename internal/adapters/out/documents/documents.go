// Package documents holds the stored shapes of the values embedded in user
// and order records. The same shapes back the mongo documents and the
// postgres JSONB columns.
package documents

import (
	"time"

	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
)

// Party is the stored customer or agent snapshot.
type Party struct {
	Number string `bson:"number" json:"number"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Phone  string `bson:"phone" json:"phone"`
}

func FromParty(p order.Party) Party {
	return Party{
		Number: p.Number.String(),
		Name:   p.Name,
		Email:  p.Email,
		Phone:  p.Phone,
	}
}

func FromPartyPtr(p *order.Party) *Party {
	if p == nil {
		return nil
	}
	doc := FromParty(*p)
	return &doc
}

func (d Party) ToDomain() (order.Party, error) {
	number, err := kernel.UUIDFromString(d.Number)
	if err != nil {
		return order.Party{}, err
	}
	return order.NewParty(number, d.Name, d.Email, d.Phone)
}

// ToDomainPtr maps an optional snapshot.
func (d *Party) ToDomainPtr() (*order.Party, error) {
	if d == nil {
		return nil, nil
	}
	p, err := d.ToDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type Flight struct {
	From   string    `bson:"flightFrom" json:"flightFrom"`
	To     string    `bson:"flightTo" json:"flightTo"`
	Date   time.Time `bson:"flightDate" json:"flightDate"`
	Time   string    `bson:"flightTime,omitempty" json:"flightTime,omitempty"`
	Number string    `bson:"flightNumber,omitempty" json:"flightNumber,omitempty"`
}

func FromFlight(f order.Flight) Flight {
	return Flight{
		From:   f.From,
		To:     f.To,
		Date:   f.Date.UTC(),
		Time:   f.Time,
		Number: f.Number,
	}
}

func FromFlightPtr(f *order.Flight) *Flight {
	if f == nil {
		return nil
	}
	doc := FromFlight(*f)
	return &doc
}

func (d Flight) ToDomain() (order.Flight, error) {
	return order.NewFlight(d.From, d.To, d.Date, d.Time, d.Number)
}

func (d *Flight) ToDomainPtr() (*order.Flight, error) {
	if d == nil {
		return nil, nil
	}
	f, err := d.ToDomain()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

type Passenger struct {
	FirstName      string     `bson:"firstName" json:"firstName"`
	LastName       string     `bson:"lastName" json:"lastName"`
	PassportNumber string     `bson:"passportNumber" json:"passportNumber"`
	Nationality    string     `bson:"nationality" json:"nationality"`
	DateOfBirth    time.Time  `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender         string     `bson:"gender" json:"gender"`
	PassportDate   *time.Time `bson:"passportDate,omitempty" json:"passportDate,omitempty"`
}

func FromPassengers(passengers []order.Passenger) []Passenger {
	out := make([]Passenger, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, Passenger{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PassportNumber: p.PassportNumber,
			Nationality:    p.Nationality,
			DateOfBirth:    p.DateOfBirth.UTC(),
			Gender:         p.Gender.String(),
			PassportDate:   p.PassportDate,
		})
	}
	return out
}

func ToPassengers(docs []Passenger) ([]order.Passenger, error) {
	out := make([]order.Passenger, 0, len(docs))
	for _, d := range docs {
		gender, err := order.ParseGender(d.Gender)
		if err != nil {
			return nil, err
		}
		p, err := order.NewPassenger(d.FirstName, d.LastName, d.PassportNumber, d.Nationality, d.DateOfBirth, gender, d.PassportDate)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

type Address struct {
	Country     string `bson:"country" json:"country"`
	State       string `bson:"state,omitempty" json:"state,omitempty"`
	City        string `bson:"city" json:"city"`
	Street      string `bson:"street" json:"street"`
	HouseNumber *int   `bson:"houseNumber,omitempty" json:"houseNumber,omitempty"`
	Zip         int    `bson:"zip" json:"zip"`
}

func FromAddress(a *user.Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Country:     a.Country,
		State:       a.State,
		City:        a.City,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		Zip:         a.Zip,
	}
}

func (d *Address) ToDomain() *user.Address {
	if d == nil {
		return nil
	}
	return &user.Address{
		Country:     d.Country,
		State:       d.State,
		City:        d.City,
		Street:      d.Street,
		HouseNumber: d.HouseNumber,
		Zip:         d.Zip,
	}
}

type Passport struct {
	Number  string     `bson:"number,omitempty" json:"number,omitempty"`
	Date    *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Country string     `bson:"country,omitempty" json:"country,omitempty"`
}

func FromPassport(p *user.Passport) *Passport {
	if p == nil {
		return nil
	}
	doc := &Passport{
		Number: p.Number,
		Date:   p.Date,
	}
	if p.Country != nil {
		doc.Country = p.Country.String()
	}
	return doc
}

func (d *Passport) ToDomain() (*user.Passport, error) {
	if d == nil {
		return nil, nil
	}
	p := &user.Passport{
		Number: d.Number,
		Date:   d.Date,
	}
	if d.Country != "" {
		country, err := kernel.NewCountryCode(d.Country)
		if err != nil {
			return nil, err
		}
		p.Country = &country
	}
	return p, nil
}
