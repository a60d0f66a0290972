package audit

import (
	"errors"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is a single append-only audit record of a business event.
// Entries reference the order, driver, and client involved, whichever of
// those apply to the recorded action, and carry a free-text detail line.
//
// Entries are immutable once created: the log is append-only, there is no
// update or delete path anywhere in the service.
type Entry struct {
	// id uniquely identifies the entry
	id kernel.UUID
	// action is the kind of business event recorded
	action Action
	// orderID, driverID, clientID reference the involved parties, each optional
	orderID  *kernel.UUID
	driverID *kernel.UUID
	clientID *kernel.UUID
	// detail is a free-text line with event specifics
	detail string
	// createdAt is when the event was recorded
	createdAt time.Time
	// guard ensures the entry was properly constructed
	guard guard.ConstructorGuard
}

// NewEntry creates a new audit Entry stamped with the current time.
//
// Parameters:
//   - id: Unique identifier for the entry (must be a valid UUID)
//   - action: The business event kind (must be a defined Action)
//   - orderID, driverID, clientID: Optional references to the involved parties
//   - detail: Free-text event specifics (may be empty)
//
// Returns:
//   - *Entry: The created entry
//   - error: Validation error if id, action, or any reference is invalid
func NewEntry(
	id kernel.UUID,
	action Action,
	orderID, driverID, clientID *kernel.UUID,
	detail string,
) (*Entry, error) {
	entry := &Entry{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setAction(action),
		validateOptionalRef(orderID),
		validateOptionalRef(driverID),
		validateOptionalRef(clientID),
	); err != nil {
		return nil, err
	}

	entry.orderID = orderID
	entry.driverID = driverID
	entry.clientID = clientID
	entry.detail = detail
	return entry, nil
}

// RestoreEntry reconstructs an audit Entry from persistent storage.
func RestoreEntry(
	id kernel.UUID,
	action Action,
	orderID, driverID, clientID *kernel.UUID,
	detail string,
	createdAt time.Time,
) (*Entry, error) {
	entry, err := NewEntry(id, action, orderID, driverID, clientID, detail)
	if err != nil {
		return nil, err
	}

	entry.createdAt = createdAt
	return entry, nil
}

// Validate checks if the Entry was properly constructed using a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// Action returns the kind of business event recorded.
func (e *Entry) Action() Action {
	return e.action
}

// OrderID returns the referenced order, nil if none applies.
func (e *Entry) OrderID() *kernel.UUID {
	return e.orderID
}

// DriverID returns the referenced driver, nil if none applies.
func (e *Entry) DriverID() *kernel.UUID {
	return e.driverID
}

// ClientID returns the referenced client, nil if none applies.
func (e *Entry) ClientID() *kernel.UUID {
	return e.clientID
}

// Detail returns the free-text event specifics, empty if none were given.
func (e *Entry) Detail() string {
	return e.detail
}

// CreatedAt returns when the event was recorded.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// setID sets the entry's unique identifier with validation.
func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	e.id = id
	return nil
}

// setAction sets the recorded action with validation.
func (e *Entry) setAction(action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	e.action = action
	return nil
}

// validateOptionalRef validates a reference when present.
func validateOptionalRef(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}
