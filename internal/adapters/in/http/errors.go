package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"travelagency/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// ErrorRecorder receives every failed request.
type ErrorRecorder interface {
	Record(status int, message, url, method string)
}

// NewErrorHandler renders errors as {"status":"error","message":...}.
func NewErrorHandler(logger *slog.Logger, recorder ErrorRecorder) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		req := c.Request()
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(req.Context(), "request failed",
				"error", err,
				"method", req.Method,
				"uri", req.RequestURI,
			)
		}
		if recorder != nil {
			recorder.Record(status, message, req.RequestURI, req.Method)
		}

		if req.Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Status: "error", Message: message})
		}
		if err != nil {
			logger.ErrorContext(req.Context(), "failed to write error response", "error", err)
		}
	}
}

// classify maps an error to a status code and a client facing message.
func classify(err error) (int, string) {
	var (
		httpErr    *echo.HTTPError
		validation *errs.ValidationError
		unauth     *errs.UnauthenticatedError
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &unauth):
		return http.StatusUnauthorized, unauth.Reason
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, firstLine(err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, firstLine(err)
	case errors.Is(err, errs.ErrAlreadyExists), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, firstLine(err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, firstLine(err)
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// firstLine keeps the first error of a joined error.
func firstLine(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
