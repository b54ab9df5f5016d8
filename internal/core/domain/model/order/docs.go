// Package order contains the Order aggregate and its lifecycle state
// machine. An order is created in pending status by checkout, moves through
// the kitchen states under the restaurant owner's control, is claimed and
// delivered by a delivery person, and can be cancelled early by the
// customer or an admin.
//
// The package owns transition authority: every state-changing method
// verifies both that the requested edge exists in the transition table and
// that the acting party is allowed to drive it. Callers never mutate status
// directly.
package order
