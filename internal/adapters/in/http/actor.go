package http

import (
	"errors"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity headers. The authenticating front sits in front of this
// service and forwards the verified identity with every request; the
// service never derives the actor from anything else.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

var errMissingActor = errors.New("X-Actor-Id and X-Actor-Role headers are required")

// actorFromRequest builds the acting identity from the request headers.
func actorFromRequest(ctx echo.Context) (order.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderActorID)
	rawRole := ctx.Request().Header.Get(HeaderActorRole)
	if rawID == "" || rawRole == "" {
		return order.Actor{}, errMissingActor
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return order.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorID, err)
	}

	role, err := order.RoleFromString(rawRole)
	if err != nil {
		return order.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorRole, err)
	}

	return order.NewActor(id, role)
}

// customerFromRequest is actorFromRequest restricted to the customer role,
// for the cart and checkout endpoints that operate on the caller's own cart.
func customerFromRequest(ctx echo.Context) (kernel.UUID, error) {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}
	if actor.Role != order.RoleCustomer {
		return kernel.UUID{}, order.ErrAccessDenied
	}
	return actor.ID, nil
}
