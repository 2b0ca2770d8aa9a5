package http

import (
	"bytes"
	"encoding/json"
	"time"

	"travelagency/internal/adapters/in/http/validation"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type NameRequest struct {
	First  string  `json:"first" validate:"required,min=2,max=255"`
	Middle *string `json:"middle" validate:"omitempty,min=2,max=255"`
	Last   string  `json:"last" validate:"required,min=2,max=255"`
}

type NamePatchRequest struct {
	First  *string `json:"first" validate:"omitempty,min=2,max=255"`
	Middle *string `json:"middle" validate:"omitempty,min=2,max=255"`
	Last   *string `json:"last" validate:"omitempty,min=2,max=255"`
}

type AddressRequest struct {
	Country     string  `json:"country" validate:"required,min=2,max=255"`
	State       *string `json:"state" validate:"omitempty,min=2,max=255"`
	City        string  `json:"city" validate:"required,min=2,max=255"`
	Street      string  `json:"street" validate:"required,min=2,max=255"`
	HouseNumber *int    `json:"houseNumber"`
	Zip         *int    `json:"zip" validate:"required"`
}

type AddressPatchRequest struct {
	Country     *string `json:"country" validate:"omitempty,min=2,max=255"`
	State       *string `json:"state" validate:"omitempty,min=2,max=255"`
	City        *string `json:"city" validate:"omitempty,min=2,max=255"`
	Street      *string `json:"street" validate:"omitempty,min=2,max=255"`
	HouseNumber *int    `json:"houseNumber"`
	Zip         *int    `json:"zip"`
}

type PassportRequest struct {
	PassportNumber  *string          `json:"passportNumber" validate:"omitempty,min=1"`
	PassportDate    *validation.Date `json:"passportDate"`
	PassportCountry *string          `json:"passportCountry" validate:"omitempty,len=2"`
}

// RegisterUserRequest accepts the role flags and createAt for compatibility;
// they are ignored.
type RegisterUserRequest struct {
	Name     *NameRequest     `json:"name" validate:"required"`
	Phone    string           `json:"phone" validate:"required,min=9,max=12"`
	Email    string           `json:"email" validate:"required,min=5,max=255,email"`
	Password string           `json:"password" validate:"required,min=6,max=1024"`
	Address  *AddressRequest  `json:"address" validate:"omitempty"`
	Passport *PassportRequest `json:"passport" validate:"omitempty"`
	IsAgent  *bool            `json:"isAgent"`
	IsAdmin  *bool            `json:"isAdmin"`
	CreateAt *validation.Date `json:"createAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

type UpdateUserRequest struct {
	Name     *NamePatchRequest    `json:"name" validate:"omitempty"`
	Phone    *string              `json:"phone" validate:"omitempty,min=9,max=12"`
	Email    *string              `json:"email" validate:"omitempty,min=5,max=255,email"`
	Password *string              `json:"password" validate:"omitempty,min=6,max=1024"`
	Address  *AddressPatchRequest `json:"address" validate:"omitempty"`
	Passport *PassportRequest     `json:"passport" validate:"omitempty"`
}

type SetUserRolesRequest struct {
	IsAgent *bool `json:"isAgent"`
	IsAdmin *bool `json:"isAdmin"`
}

type FlightRequest struct {
	From   string           `json:"flightFrom" validate:"required"`
	To     string           `json:"flightTo" validate:"required"`
	Date   *validation.Date `json:"flightDate" validate:"required"`
	Time   *string          `json:"flightTime"`
	Number *string          `json:"flightNumber"`
}

type FlightPatchRequest struct {
	From   *string          `json:"flightFrom" validate:"omitempty,min=1"`
	To     *string          `json:"flightTo" validate:"omitempty,min=1"`
	Date   *validation.Date `json:"flightDate"`
	Time   *string          `json:"flightTime"`
	Number *string          `json:"flightNumber"`
}

// OwnerFlightPatchRequest is the part of a flight a customer may edit.
type OwnerFlightPatchRequest struct {
	From *string          `json:"flightFrom" validate:"omitempty,min=1"`
	To   *string          `json:"flightTo" validate:"omitempty,min=1"`
	Date *validation.Date `json:"flightDate"`
}

type PassengerRequest struct {
	FirstName      string           `json:"firstName" validate:"required"`
	LastName       string           `json:"lastName" validate:"required"`
	PassportNumber string           `json:"passportNumber" validate:"required"`
	Nationality    string           `json:"nationality" validate:"required"`
	DateOfBirth    *validation.Date `json:"dateOfBirth" validate:"required"`
	Gender         string           `json:"gender" validate:"required,oneof=Male Female Other 'Prefer not to say'"`
	PassportDate   *validation.Date `json:"passportDate"`
}

type CreateOrderRequest struct {
	Flight       *FlightRequest     `json:"flight" validate:"required"`
	ReturnFlight *FlightRequest     `json:"returnFlight" validate:"omitempty"`
	Passengers   []PassengerRequest `json:"passengers" validate:"required,min=1,dive"`
	Notes        *string            `json:"notes"`
	Price        *float64           `json:"price" validate:"omitempty,gte=0"`
	OrderDate    *validation.Date   `json:"orderDate"`
}

type OwnerUpdateOrderRequest struct {
	Flight       *OwnerFlightPatchRequest `json:"flight" validate:"omitempty"`
	ReturnFlight *OwnerFlightPatchRequest `json:"returnFlight" validate:"omitempty"`
	Passengers   []PassengerRequest       `json:"passengers" validate:"omitempty,min=1,dive"`
	Notes        *string                  `json:"notes"`
}

type StaffUpdateOrderRequest struct {
	OrderDate    *validation.Date    `json:"orderDate"`
	Flight       *FlightPatchRequest `json:"flight" validate:"omitempty"`
	ReturnFlight *FlightPatchRequest `json:"returnFlight" validate:"omitempty"`
	OrderStatus  *string             `json:"orderStatus"`
	Price        *float64            `json:"price" validate:"omitempty,gte=0"`
	Passengers   []PassengerRequest  `json:"passengers" validate:"omitempty,min=1,dive"`
	Notes        *string             `json:"notes"`
}

// OptionalID tells an explicit null apart from a missing key.
type OptionalID struct {
	Present bool
	Value   *string
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type AssignAgentRequest struct {
	Agent OptionalID `json:"agent"`
}

type ChangeOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required"`
}

type NameResponse struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

type AddressResponse struct {
	Country     string `json:"country"`
	State       string `json:"state,omitempty"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber *int   `json:"houseNumber,omitempty"`
	Zip         int    `json:"zip"`
}

type PassportResponse struct {
	PassportNumber  string     `json:"passportNumber,omitempty"`
	PassportDate    *time.Time `json:"passportDate,omitempty"`
	PassportCountry string     `json:"passportCountry,omitempty"`
}

type RegisteredUserResponse struct {
	ID       string           `json:"_id"`
	Name     NameResponse     `json:"name"`
	Email    string           `json:"email"`
	Phone    string           `json:"phone"`
	Address  *AddressResponse `json:"address,omitempty"`
	CreateAt time.Time        `json:"createAt"`
}

type UserResponse struct {
	ID       string            `json:"_id"`
	Name     NameResponse      `json:"name"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Address  *AddressResponse  `json:"address,omitempty"`
	Passport *PassportResponse `json:"passport,omitempty"`
	IsAgent  bool              `json:"isAgent"`
	IsAdmin  bool              `json:"isAdmin"`
	CreateAt time.Time         `json:"createAt"`
}

type PartyResponse struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

type FlightResponse struct {
	From   string    `json:"flightFrom"`
	To     string    `json:"flightTo"`
	Date   time.Time `json:"flightDate"`
	Time   string    `json:"flightTime"`
	Number string    `json:"flightNumber"`
}

type PassengerResponse struct {
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	PassportNumber string     `json:"passportNumber"`
	Nationality    string     `json:"nationality"`
	DateOfBirth    time.Time  `json:"dateOfBirth"`
	Gender         string     `json:"gender"`
	PassportDate   *time.Time `json:"passportDate,omitempty"`
}

type OrderResponse struct {
	ID           string              `json:"_id"`
	Customer     PartyResponse       `json:"customer"`
	Agent        *PartyResponse      `json:"agent"`
	OrderDate    time.Time           `json:"orderDate"`
	Flight       FlightResponse      `json:"flight"`
	ReturnFlight *FlightResponse     `json:"returnFlight"`
	OrderStatus  string              `json:"orderStatus"`
	Price        float64             `json:"price"`
	Passengers   []PassengerResponse `json:"passengers"`
	Notes        string              `json:"notes"`
}

func toNameResponse(n user.Name) NameResponse {
	return NameResponse{First: n.First, Middle: n.Middle, Last: n.Last}
}

func toAddressResponse(a *user.Address) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{
		Country:     a.Country,
		State:       a.State,
		City:        a.City,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		Zip:         a.Zip,
	}
}

func toPassportResponse(p *user.Passport) *PassportResponse {
	if p == nil {
		return nil
	}
	resp := &PassportResponse{
		PassportNumber: p.Number,
		PassportDate:   p.Date,
	}
	if p.Country != nil {
		resp.PassportCountry = p.Country.String()
	}
	return resp
}

func toRegisteredUserResponse(u *user.User) RegisteredUserResponse {
	return RegisteredUserResponse{
		ID:       u.ID().String(),
		Name:     toNameResponse(u.Name()),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Address:  toAddressResponse(u.Address()),
		CreateAt: u.CreateAt(),
	}
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID().String(),
		Name:     toNameResponse(u.Name()),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Address:  toAddressResponse(u.Address()),
		Passport: toPassportResponse(u.Passport()),
		IsAgent:  u.IsAgent(),
		IsAdmin:  u.IsAdmin(),
		CreateAt: u.CreateAt(),
	}
}

func toPartyResponse(p order.Party) PartyResponse {
	return PartyResponse{
		Number: p.Number.String(),
		Name:   p.Name,
		Email:  p.Email,
		Phone:  p.Phone,
	}
}

func toFlightResponse(f order.Flight) FlightResponse {
	return FlightResponse{
		From:   f.From,
		To:     f.To,
		Date:   f.Date,
		Time:   f.Time,
		Number: f.Number,
	}
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID().String(),
		Customer:    toPartyResponse(o.Customer()),
		OrderDate:   o.OrderDate(),
		Flight:      toFlightResponse(o.Flight()),
		OrderStatus: o.Status().String(),
		Price:       o.Price(),
		Notes:       o.Notes(),
	}
	if agent := o.Agent(); agent != nil {
		party := toPartyResponse(*agent)
		resp.Agent = &party
	}
	if rf := o.ReturnFlight(); rf != nil {
		flight := toFlightResponse(*rf)
		resp.ReturnFlight = &flight
	}

	passengers := o.Passengers()
	resp.Passengers = make([]PassengerResponse, 0, len(passengers))
	for _, p := range passengers {
		resp.Passengers = append(resp.Passengers, PassengerResponse{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PassportNumber: p.PassportNumber,
			Nationality:    p.Nationality,
			DateOfBirth:    p.DateOfBirth,
			Gender:         p.Gender.String(),
			PassportDate:   p.PassportDate,
		})
	}
	return resp
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}
