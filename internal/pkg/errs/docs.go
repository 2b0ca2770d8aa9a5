// Package errs provides the typed errors shared by every layer of the booking
// service. Each error kind follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrAccessDenied, ...) used with errors.Is
//   - a struct carrying the details of the failure
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The HTTP adapter classifies errors by sentinel only, so domain and
// application code never deal with status codes:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange -> 400
//   - ErrUnauthenticated -> 401
//   - ErrAccessDenied -> 403
//   - ErrObjectNotFound -> 404
//   - ErrAlreadyExists, ErrVersionIsInvalid -> 409
package errs
