package http

import (
	"errors"
	"net/http"

	"foodhub/internal/core/application/usecases/commands"
	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/menu"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps application and domain errors onto HTTP statuses.
// Unknown errors become a 500 without leaking internals.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errMissingActor):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, order.ErrAccessDenied):
		code = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, order.ErrOrderAlreadyAssigned),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderNotRateable):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, menu.ErrNotOrderable):
		code = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, commands.ErrEmptyCart),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
