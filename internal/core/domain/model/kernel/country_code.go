package kernel

import (
	"fmt"
	"strings"

	"travelagency/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrCountryCodeIsNotConstructed is returned when validating the zero CountryCode.
	ErrCountryCodeIsNotConstructed = errs.NewValueIsRequiredError("CountryCode must be created via NewCountryCode")

	countryValidator = validator.New(validator.WithRequiredStructEnabled())
)

// CountryCode is an ISO 3166-1 alpha-2 country code, always upper case.
type CountryCode struct {
	code string
}

// NewCountryCode accepts a code in any letter case and normalizes it to upper
// case. Anything that is not an assigned alpha-2 code (including alpha-3 codes
// such as "USA") is rejected.
func NewCountryCode(raw string) (CountryCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return CountryCode{}, errs.NewValueIsRequiredError("passportCountry")
	}

	if err := countryValidator.Var(code, "len=2,iso3166_1_alpha2"); err != nil {
		return CountryCode{}, errs.NewValueIsInvalidErrorWithCause(
			"passportCountry",
			fmt.Errorf("%q is not an ISO 3166-1 alpha-2 code", raw),
		)
	}

	return CountryCode{code: code}, nil
}

func (c CountryCode) String() string {
	return c.code
}

func (c CountryCode) IsEqual(other CountryCode) bool {
	return c.code == other.code
}

func (c CountryCode) Validate() error {
	if c.code == "" {
		return ErrCountryCodeIsNotConstructed
	}
	return nil
}
