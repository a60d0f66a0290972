package order

import (
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
)

// Status represents the lifecycle state of a ride order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	New ──> Broadcast ──> Assigned ──> Completed
//	 │          │             │
//	 └──────────┴─────────────┴──────> Cancelled
//
// New orders may also be assigned directly, skipping Broadcast, when
// a dispatcher hands the order to a driver before it reaches the chat.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when an order is first created.
	// Orders in this status have not yet been offered to drivers.
	New

	// Broadcast indicates the order has been offered to the driver pool.
	// Orders in this status are waiting for a driver to accept.
	Broadcast

	// Assigned indicates exactly one driver holds the order.
	Assigned

	// Completed indicates the trip finished successfully.
	// This is a terminal state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was withdrawn before completion.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		New:       "NEW",
		Broadcast: "BROADCAST",
		Assigned:  "ASSIGNED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:       "NEW",
		Broadcast: "BROADCAST",
		Assigned:  "ASSIGNED",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses a status from its persisted string token.
//
// Returns:
//   - the matching Status for "NEW", "BROADCAST", "ASSIGNED", "COMPLETED", "CANCELLED"
//   - an error for any other input
//
// This function is the inverse of String() and is used when restoring
// orders from the database or parsing query filters.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: New, Broadcast, Assigned, Completed, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical token of the status, e.g. "BROADCAST".
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones, which yield "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsActive reports whether the status counts toward a client's single
// active order: New, Broadcast, and Assigned are active.
func (s Status) IsActive() bool {
	return s == New || s == Broadcast || s == Assigned
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateAssign checks if the status allows driver assignment without
// performing the transition.
//
// Valid statuses for assignment:
//   - New (dispatcher hands the order over before broadcast)
//   - Broadcast (a driver accepts the offer)
//
// Returns:
//   - nil if assignment is allowed from the current status
//   - InvalidStateError otherwise
//
// This method provides assignability validation without side effects,
// useful for pre-validation before the guarded database update runs.
func (s Status) ValidateAssign() error {
	if s != New && s != Broadcast {
		return errs.NewInvalidStateErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// Broadcast transitions the status to Broadcast.
//
// Valid transitions:
//   - New -> Broadcast (offer posted to the driver pool)
//
// Returns:
//   - (Broadcast, nil) on valid transition
//   - (0, InvalidStateError) if the order already left New
func (s Status) Broadcast() (Status, error) {
	if s != New {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to broadcast", s.String()),
		)
	}

	return Broadcast, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - New -> Assigned
//   - Broadcast -> Assigned
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, InvalidStateError) if the transition is not allowed
//
// Reassignment is not allowed: once a driver holds the order, it can
// only be completed or cancelled.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Assigned -> Completed (trip finished)
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, InvalidStateError) if the order is not assigned
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - New -> Cancelled
//   - Broadcast -> Cancelled
//   - Assigned -> Cancelled
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, InvalidStateError) if the order is already terminal
//
// Whether a particular actor may cancel from Assigned is decided by the
// aggregate, not by the status machine.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, errs.NewInvalidStateErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment. Enforces that only orders which reached Assigned carry
// a driver reference.
//
// Business rules:
//   - New and Broadcast orders must not have a driver
//   - Assigned and Completed orders must have a driver
//   - Cancelled orders may or may not have one (admin cancel of an assigned trip)
//
// Parameters:
//   - driver: whether the order has a driver assigned
//
// Returns:
//   - error: validation error if status and driver assignment are inconsistent
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && (s == New || s == Broadcast) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !driver && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}
