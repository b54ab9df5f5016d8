package order

import (
	"errors"
	"fmt"

	"foodhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> ready_for_pickup ──> out_for_delivery ──> delivered
//	   │            │
//	   └────────────┴──> cancelled
//
// delivered and cancelled are terminal. Each edge may only be driven by a
// specific actor role; see the methods on Order.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status. The zero
	// value is deliberately invalid to catch uninitialized statuses.
	StatusUnknown Status = iota

	// StatusPending is the initial status assigned at checkout.
	StatusPending

	// StatusConfirmed means the restaurant owner accepted the order.
	StatusConfirmed

	// StatusPreparing means the kitchen is working on the order.
	StatusPreparing

	// StatusReadyForPickup means the order awaits a delivery person.
	StatusReadyForPickup

	// StatusOutForDelivery means a delivery person claimed the order.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal state. Only delivered
	// orders contribute to revenue aggregates.
	StatusDelivered

	// StatusCancelled is the unsuccessful terminal state, reachable from
	// pending or confirmed only.
	StatusCancelled
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports a requested status change that is not an
// edge of the lifecycle state machine, naming both statuses.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// given edge.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

var statusStrings = map[Status]string{
	StatusUnknown:        "unknown",
	StatusPending:        "pending",
	StatusConfirmed:      "confirmed",
	StatusPreparing:      "preparing",
	StatusReadyForPickup: "ready_for_pickup",
	StatusOutForDelivery: "out_for_delivery",
	StatusDelivered:      "delivered",
	StatusCancelled:      "cancelled",
}

// transitions is the complete edge set of the lifecycle state machine.
// Any (from, to) pair absent here is an invalid transition.
var transitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReadyForPickup},
	StatusReadyForPickup: {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

// StatusFromString parses the wire/storage representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid order status", s))
}

// String returns the lowercase snake_case name of the status. This form is
// persisted and exposed on the wire.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// Validate reports whether the status is one of the defined lifecycle
// states.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether the state machine has an edge from s to
// target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, to := range transitions[s] {
		if to == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsInFlight reports whether the order still occupies the restaurant's
// queue: pending, confirmed or preparing. Used by the pending-count
// dashboard aggregate.
func (s Status) IsInFlight() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusPreparing
}
