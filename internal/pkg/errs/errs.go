package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAccessDenied      = errors.New("access denied")
	ErrUnauthenticated   = errors.New("unauthenticated")
)

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// sanitize keeps user supplied values on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ObjectNotFoundError reports a lookup by identifier that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(fmt.Sprintf("%s not found", e.ParamName), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause("value is invalid: "+e.ParamName, e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("value is invalid: %s is %s, min value is %s, max value is %s",
		sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause("value is required: "+e.ParamName, e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports a compare-and-swap write that lost against a
// concurrent writer.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("version is invalid: %s was modified concurrently", e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// AlreadyExistsError reports a uniqueness violation.
type AlreadyExistsError struct {
	ObjectName string
	Detail     string
	Cause      error
}

func NewAlreadyExistsError(objectName, detail string) *AlreadyExistsError {
	return &AlreadyExistsError{ObjectName: objectName, Detail: detail}
}

func NewAlreadyExistsErrorWithCause(objectName, detail string, cause error) *AlreadyExistsError {
	return &AlreadyExistsError{ObjectName: objectName, Detail: detail, Cause: cause}
}

func (e *AlreadyExistsError) Error() string {
	msg := e.ObjectName + " already exists"
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return withCause(msg, e.Cause)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// AccessDeniedError reports an authenticated caller that is not allowed to
// perform Action.
type AccessDeniedError struct {
	Action string
	Cause  error
}

func NewAccessDeniedError(action string) *AccessDeniedError {
	return &AccessDeniedError{Action: action}
}

func NewAccessDeniedErrorWithCause(action string, cause error) *AccessDeniedError {
	return &AccessDeniedError{Action: action, Cause: cause}
}

func (e *AccessDeniedError) Error() string {
	return withCause("access denied: "+e.Action, e.Cause)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// UnauthenticatedError reports a request without valid credentials.
type UnauthenticatedError struct {
	Reason string
	Cause  error
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	return withCause("unauthenticated: "+e.Reason, e.Cause)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// ValidationError carries a payload violation whose message is shown to the
// client verbatim.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValueIsInvalid
}
