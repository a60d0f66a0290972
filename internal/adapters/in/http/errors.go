package http

import (
	"errors"
	"net/http"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// jsonError writes the domain error as a JSON body with the mapped status.
func jsonError(ctx echo.Context, err error) error {
	code := statusCode(err)
	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

// badRequest writes a 400 with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// statusCode maps domain errors to HTTP status codes. Validation failures
// are the caller's fault, lifecycle and availability conflicts are races
// the caller should retry or give up on, everything else is ours.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrDriverUnavailable):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
