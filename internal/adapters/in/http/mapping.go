package http

import (
	"fmt"
	"strings"

	"travelagency/internal/core/application/usecases/commands"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"
	"travelagency/internal/pkg/errs"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseID(param, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValidationError(fmt.Sprintf("%q must be a valid GUID", param))
	}
	return id, nil
}

func toName(req *NameRequest) (user.Name, error) {
	return user.NewName(req.First, deref(req.Middle), req.Last)
}

func toAddress(req *AddressRequest) *user.Address {
	if req == nil {
		return nil
	}
	address := &user.Address{
		Country:     req.Country,
		State:       deref(req.State),
		City:        req.City,
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
	}
	if req.Zip != nil {
		address.Zip = *req.Zip
	}
	return address
}

func toCountryCode(raw *string) (*kernel.CountryCode, error) {
	if raw == nil {
		return nil, nil
	}
	code, err := kernel.NewCountryCode(*raw)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func toPassport(req *PassportRequest) (*user.Passport, error) {
	if req == nil {
		return nil, nil
	}
	country, err := toCountryCode(req.PassportCountry)
	if err != nil {
		return nil, err
	}
	return &user.Passport{
		Number:  deref(req.PassportNumber),
		Date:    req.PassportDate.Ptr(),
		Country: country,
	}, nil
}

func toPassportPatch(req *PassportRequest) (*user.PassportPatch, error) {
	if req == nil {
		return nil, nil
	}
	country, err := toCountryCode(req.PassportCountry)
	if err != nil {
		return nil, err
	}
	return &user.PassportPatch{
		Number:  req.PassportNumber,
		Date:    req.PassportDate.Ptr(),
		Country: country,
	}, nil
}

func toRegisterUserCommand(req RegisterUserRequest) (commands.RegisterUserCommand, error) {
	name, err := toName(req.Name)
	if err != nil {
		return commands.RegisterUserCommand{}, err
	}
	passport, err := toPassport(req.Passport)
	if err != nil {
		return commands.RegisterUserCommand{}, err
	}
	return commands.NewRegisterUserCommand(name, req.Phone, req.Email, req.Password, toAddress(req.Address), passport)
}

func toProfileInput(req UpdateUserRequest) (commands.UserProfileInput, error) {
	input := commands.UserProfileInput{
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Name != nil {
		input.Name = &user.NamePatch{First: req.Name.First, Middle: req.Name.Middle, Last: req.Name.Last}
	}
	if req.Address != nil {
		input.Address = &user.AddressPatch{
			Country:     req.Address.Country,
			State:       req.Address.State,
			City:        req.Address.City,
			Street:      req.Address.Street,
			HouseNumber: req.Address.HouseNumber,
			Zip:         req.Address.Zip,
		}
	}
	passport, err := toPassportPatch(req.Passport)
	if err != nil {
		return commands.UserProfileInput{}, err
	}
	input.Passport = passport
	return input, nil
}

func toFlight(req *FlightRequest) (order.Flight, error) {
	return order.NewFlight(req.From, req.To, req.Date.Time, deref(req.Time), deref(req.Number))
}

func toFlightPatch(req *FlightPatchRequest) *order.FlightPatch {
	if req == nil {
		return nil
	}
	return &order.FlightPatch{
		From:   req.From,
		To:     req.To,
		Date:   req.Date.Ptr(),
		Time:   req.Time,
		Number: req.Number,
	}
}

func toOwnerFlightPatch(req *OwnerFlightPatchRequest) *order.FlightPatch {
	if req == nil {
		return nil
	}
	return &order.FlightPatch{
		From: req.From,
		To:   req.To,
		Date: req.Date.Ptr(),
	}
}

func toPassengers(reqs []PassengerRequest) ([]order.Passenger, error) {
	if reqs == nil {
		return nil, nil
	}
	passengers := make([]order.Passenger, 0, len(reqs))
	for i, req := range reqs {
		gender, err := order.ParseGender(req.Gender)
		if err != nil {
			return nil, errs.NewValidationError(fmt.Sprintf(
				"%q must be one of [Male, Female, Other, Prefer not to say]",
				fmt.Sprintf("passengers[%d].gender", i),
			))
		}
		p, err := order.NewPassenger(
			req.FirstName,
			req.LastName,
			req.PassportNumber,
			req.Nationality,
			req.DateOfBirth.Time,
			gender,
			req.PassportDate.Ptr(),
		)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, nil
}

func parseStatus(raw string) (order.Status, error) {
	status, err := order.ParseStatus(raw)
	if err != nil {
		names := make([]string, 0, len(order.AllStatuses()))
		for _, s := range order.AllStatuses() {
			names = append(names, s.String())
		}
		return order.Unknown, errs.NewValidationError(
			fmt.Sprintf(`"orderStatus" must be one of [%s]`, strings.Join(names, ", ")),
		)
	}
	return status, nil
}

func toOwnerChanges(req OwnerUpdateOrderRequest) (order.StaffChanges, error) {
	passengers, err := toPassengers(req.Passengers)
	if err != nil {
		return order.StaffChanges{}, err
	}
	return order.StaffChanges{
		Flight:       toOwnerFlightPatch(req.Flight),
		ReturnFlight: toOwnerFlightPatch(req.ReturnFlight),
		Passengers:   passengers,
		Notes:        req.Notes,
	}, nil
}

func toStaffChanges(req StaffUpdateOrderRequest) (order.StaffChanges, error) {
	passengers, err := toPassengers(req.Passengers)
	if err != nil {
		return order.StaffChanges{}, err
	}
	changes := order.StaffChanges{
		OrderDate:    req.OrderDate.Ptr(),
		Flight:       toFlightPatch(req.Flight),
		ReturnFlight: toFlightPatch(req.ReturnFlight),
		Price:        req.Price,
		Passengers:   passengers,
		Notes:        req.Notes,
	}
	if req.OrderStatus != nil {
		status, err := parseStatus(*req.OrderStatus)
		if err != nil {
			return order.StaffChanges{}, err
		}
		changes.Status = &status
	}
	return changes, nil
}
