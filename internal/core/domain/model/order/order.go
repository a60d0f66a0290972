package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOriginIsRequired is returned when attempting to create an order with a blank origin.
	ErrOriginIsRequired = errs.NewValueIsRequiredError("origin")

	// ErrDestinationIsRequired is returned when attempting to create an order with a blank destination.
	ErrDestinationIsRequired = errs.NewValueIsRequiredError("destination")
)

// Order represents a ride order in the system. It is the aggregate root that manages
// the order lifecycle from creation through broadcast and assignment to completion
// or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a valid client identifier
//   - Origin and destination must be non-blank (addresses are opaque strings)
//   - The driver reference is set exactly once, on assignment
//   - Status transitions follow the defined state machine
//   - A cancel reason is present if and only if the order is Cancelled
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientID is the client who placed the order (immutable)
	clientID kernel.UUID

	// driverID is the assigned driver's ID (nil while unassigned)
	driverID *kernel.UUID

	// origin is the pickup address as entered by the client
	origin string

	// destination is the drop-off address as entered by the client
	destination string

	// comment is an optional free-text note for the driver
	comment string

	// status represents the current state in the order lifecycle
	status Status

	// cancelReason records who cancelled the order, CancelReasonNone otherwise
	cancelReason CancelReason

	// createdAt is when the order was placed
	createdAt time.Time

	// assignedAt is when a driver took the order (nil while unassigned)
	assignedAt *time.Time

	// finishedAt is when the order reached a terminal status (nil while active)
	finishedAt *time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order with validation. This is the only way to create
// a fresh order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - clientID: Identifier of the client placing the order (must be a valid UUID)
//   - origin: Pickup address (must be non-blank)
//   - destination: Drop-off address (must be non-blank)
//   - comment: Optional note for the driver (may be empty)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid (aggregated for multiple issues)
//
// The constructor ensures the order starts in New status with no driver assigned
// and stamps the creation time.
//
// Example:
//
//	order, err := NewOrder(kernel.NewUUID(), clientID, "Lenina 1", "Airport", "")
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, clientID kernel.UUID, origin, destination, comment string) (*Order, error) {
	order := &Order{
		status:       New,
		cancelReason: CancelReasonNone,
		createdAt:    time.Now().UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setClientID(clientID),
		order.setOrigin(origin),
		order.setDestination(destination),
	); err != nil {
		return nil, err
	}

	order.comment = strings.TrimSpace(comment)
	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder which creates a fresh order in New status, this constructor
// restores the order to its previously persisted state, including the driver
// reference, cancel reason, and lifecycle timestamps.
//
// Business rules:
//   - Order and client identifiers must be valid
//   - Origin and destination must be non-blank
//   - The status must be valid and consistent with the driver reference
//   - A driver reference, when present, must be a valid UUID
//
// Returns:
//   - *Order: Restored order aggregate
//   - error: Validation error if the persisted state is inconsistent
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	driverID *kernel.UUID,
	origin, destination, comment string,
	status Status,
	cancelReason CancelReason,
	createdAt time.Time,
	assignedAt *time.Time,
	finishedAt *time.Time,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setClientID(clientID),
		order.setOrigin(origin),
		order.setDestination(destination),
		order.setStatus(status),
		order.setDriverID(driverID),
		cancelReason.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	order.comment = comment
	order.cancelReason = cancelReason
	order.createdAt = createdAt
	order.assignedAt = assignedAt
	order.finishedAt = finishedAt
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the identifier of the client who placed the order.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// Driver returns the assigned driver's ID.
// Returns nil if no driver is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Origin returns the pickup address.
func (o *Order) Origin() string {
	return o.origin
}

// Destination returns the drop-off address.
func (o *Order) Destination() string {
	return o.destination
}

// Comment returns the optional note for the driver, empty if none was given.
func (o *Order) Comment() string {
	return o.comment
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CancelReason returns who cancelled the order, CancelReasonNone if it is not cancelled.
func (o *Order) CancelReason() CancelReason {
	return o.cancelReason
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignedAt returns when a driver took the order, nil while unassigned.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// FinishedAt returns when the order reached a terminal status, nil while active.
func (o *Order) FinishedAt() *time.Time {
	return o.finishedAt
}

// IsActive reports whether the order counts toward its client's single
// active order (status New, Broadcast, or Assigned).
func (o *Order) IsActive() bool {
	return o.status.IsActive()
}

// MarkBroadcast records that the order was offered to the driver pool,
// transitioning New to Broadcast.
//
// Returns:
//   - nil on successful transition
//   - InvalidStateError if the order already left New
//
// The transition is recorded only after the offer actually reached the
// drivers chat; a failed delivery leaves the order in New so operational
// tooling can retry it.
func (o *Order) MarkBroadcast() error {
	newStatus, err := o.status.Broadcast()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Assign hands the order to a driver and updates the status to Assigned.
//
// This method enforces the following business rules:
//   - The driver ID must be valid
//   - The order must be in New or Broadcast status
//   - The order must not already have a driver (no reassignment)
//
// Parameters:
//   - driverID: The ID of the driver taking the order
//
// Returns:
//   - nil on successful assignment
//   - error if the driver ID is invalid or the transition is not allowed
//
// After successful assignment the order's status is Assigned, Driver()
// returns the driver's ID, and AssignedAt() is stamped. Note that the
// in-memory transition only validates this aggregate; protection against
// two concurrent assignments of the same order is provided by the
// status-guarded update in the persistence layer.
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil {
		return errs.NewInvalidStateErrorWithCause(
			"order",
			fmt.Errorf("order %s already has a driver", o.id),
		)
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.driverID = &driverID
	o.assignedAt = &now
	return nil
}

// Complete marks the order as completed (trip finished).
//
// Returns:
//   - nil on successful completion
//   - InvalidStateError if the order is not in Assigned status
//
// After successful completion the order's status is Completed, a terminal
// state, and FinishedAt() is stamped. Releasing the driver's busy flag is
// the caller's responsibility, as the driver is a separate aggregate.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.finishedAt = &now
	return nil
}

// Cancel withdraws the order on behalf of the given actor.
//
// This method enforces the following business rules:
//   - A client may cancel only while the order is New or Broadcast
//   - An admin may additionally cancel an Assigned order
//   - Drivers cannot cancel orders
//   - Terminal orders cannot be cancelled
//
// Parameters:
//   - actor: Who is cancelling (ActorClient or ActorAdmin)
//
// Returns:
//   - nil on successful cancellation
//   - InvalidStateError if the transition is not allowed for this actor
//   - validation error if the actor cannot cancel at all
//
// After successful cancellation the order's status is Cancelled,
// CancelReason() records the actor, and FinishedAt() is stamped.
// The driver reference, if any, is kept for history.
func (o *Order) Cancel(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	var reason CancelReason
	switch actor {
	case ActorClient:
		if o.status == Assigned {
			return errs.NewInvalidStateErrorWithCause(
				"order status",
				fmt.Errorf("client cannot cancel an %s order", o.status),
			)
		}
		reason = CancelledByClient
	case ActorAdmin:
		reason = CancelledByAdmin
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"actor is invalid",
			fmt.Errorf("%s cannot cancel orders", actor),
		)
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.cancelReason = reason
	o.finishedAt = &now
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setClientID validates and sets the client reference.
// This is a private method used only during construction.
func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return fmt.Errorf("client id: %w", err)
	}
	o.clientID = clientID
	return nil
}

// setDriverID validates and sets the optional driver reference.
// This is a private method used only during restoration.
func (o *Order) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return fmt.Errorf("driver id: %w", err)
	}
	o.driverID = driverID
	return nil
}

// setOrigin validates and sets the pickup address.
// Blank addresses are rejected; surrounding whitespace is trimmed.
func (o *Order) setOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ErrOriginIsRequired
	}
	o.origin = origin
	return nil
}

// setDestination validates and sets the drop-off address.
// Blank addresses are rejected; surrounding whitespace is trimmed.
func (o *Order) setDestination(destination string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return ErrDestinationIsRequired
	}
	o.destination = destination
	return nil
}

// setStatus validates and sets the lifecycle status.
// This is a private method used only during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
