// Package validation decodes request bodies strictly and reports the first
// violation in the wording clients already match on, such as
// `"email" must be a valid email` or `"foo" is not allowed`.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"travelagency/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// Validator decodes and validates payloads. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Decode reads one JSON object from body into dst and validates it. Unknown
// fields, type mismatches and rule violations come back as a single
// *errs.ValidationError. A read failure also carries the reader's error, so a
// body limit rejection keeps its own status.
func (v *Validator) Decode(body io.Reader, dst any) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return errors.Join(errs.NewValidationError(`"value" could not be read`), err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err = dec.Decode(dst); err != nil {
		return errs.NewValidationError(decodeMessage(err))
	}
	if dec.More() {
		return errs.NewValidationError(`"value" must be a single object`)
	}

	return v.Struct(dst)
}

// Struct validates an already decoded payload.
func (v *Validator) Struct(dst any) error {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errs.NewValidationError(message(fieldErrs[0]))
	}
	return errs.NewValidationError(`"value" is invalid`)
}

func decodeMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var dateErr *DateError

	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return `"value" must be valid JSON`
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return `"value" must be of type object`
		}
		return fmt.Sprintf("%q must be a %s", field, jsonKind(typeErr.Type))
	case errors.As(err, &dateErr):
		return fmt.Sprintf("%q must be a valid date", dateErr.Value)
	}

	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		return fmt.Sprintf("%s is not allowed", strings.TrimPrefix(msg, unknownPrefix))
	}
	return `"value" is invalid`
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == reflect.TypeOf(Date{}) {
		return "valid date"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// path drops the root struct name from the namespace, leaving the JSON path
// such as passengers[0].firstName.
func path(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", path(fe))
	kind := fe.Kind()

	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid", "uuid4":
		return field + " must be a valid GUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(oneOfValues(fe.Param()), ", "))
	case "len":
		return fmt.Sprintf("%s length must be %s characters long", field, fe.Param())
	case "min", "gte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		default:
			return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
		}
	case "max", "lte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain less than or equal to %s items", field, fe.Param())
		default:
			return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
		}
	case "iso3166_1_alpha2":
		return field + " must be a valid ISO 3166-1 alpha-2 country code"
	default:
		return field + " is invalid"
	}
}

var oneOfParam = regexp.MustCompile(`'[^']*'|\S+`)

// oneOfValues splits a oneof parameter the way the validator does, honouring
// single-quoted values with spaces.
func oneOfValues(param string) []string {
	values := oneOfParam.FindAllString(param, -1)
	for i, v := range values {
		values[i] = strings.Trim(v, "'")
	}
	return values
}
