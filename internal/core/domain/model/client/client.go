package client

import (
	"errors"
	"strings"
	"time"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/guard"
)

var (
	// ErrClientIsNotConstructed is returned when using an improperly initialized Client.
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")

	// ErrTelegramIDIsRequired is returned when attempting to create a client
	// without a Telegram identity.
	ErrTelegramIDIsRequired = errs.NewValueIsRequiredError("telegram id")
)

// Client represents a passenger of the taxi service.
// It is an aggregate root keyed internally by UUID and externally by the
// stable Telegram identity the client contacts the service with.
//
// Business rules:
//   - Clients are registered on first contact (get-or-create by Telegram id)
//   - Display fields are refreshed on every re-contact
//   - The phone number is optional profile data, set when the client shares it
//   - A client may hold at most one active order; that invariant lives in
//     the order model and the persistence layer, not here
type Client struct {
	// id uniquely identifies the client inside the service
	id kernel.UUID
	// telegramID is the stable external identity the client contacts us with
	telegramID int64
	// username is the client's Telegram username, may be empty
	username string
	// firstName and lastName are the client's display name parts
	firstName string
	lastName  string
	// phone is the client's contact number, empty until shared
	phone string
	// createdAt is when the client first contacted the service
	createdAt time.Time
	// guard ensures the client was properly constructed
	guard guard.ConstructorGuard
}

// NewClient creates a new Client on first contact.
//
// Parameters:
//   - id: Unique internal identifier (must be a valid UUID)
//   - telegramID: Stable Telegram identity (must be non-zero)
//   - username, firstName, lastName: Display fields, any of which may be empty
//
// Returns:
//   - *Client: The created client
//   - error: Validation error if id or telegramID is invalid
func NewClient(id kernel.UUID, telegramID int64, username, firstName, lastName string) (*Client, error) {
	client := &Client{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		client.setID(id),
		client.setTelegramID(telegramID),
	); err != nil {
		return nil, err
	}

	client.UpdateContact(username, firstName, lastName)
	return client, nil
}

// RestoreClient reconstructs a Client aggregate from persistent storage.
func RestoreClient(
	id kernel.UUID,
	telegramID int64,
	username, firstName, lastName, phone string,
	createdAt time.Time,
) (*Client, error) {
	client := &Client{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		client.setID(id),
		client.setTelegramID(telegramID),
	); err != nil {
		return nil, err
	}

	client.username = username
	client.firstName = firstName
	client.lastName = lastName
	client.phone = phone
	client.createdAt = createdAt
	return client, nil
}

// IsEqual compares two clients for equality based on their unique identifiers.
func (c *Client) IsEqual(other *Client) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Client was properly constructed using a constructor.
func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.guard.Validate(ErrClientIsNotConstructed)
}

// ID returns the unique internal identifier of the client.
func (c *Client) ID() kernel.UUID {
	return c.id
}

// TelegramID returns the client's stable Telegram identity.
func (c *Client) TelegramID() int64 {
	return c.telegramID
}

// Username returns the client's Telegram username, empty if not set.
func (c *Client) Username() string {
	return c.username
}

// FirstName returns the client's first name.
func (c *Client) FirstName() string {
	return c.firstName
}

// LastName returns the client's last name.
func (c *Client) LastName() string {
	return c.lastName
}

// Phone returns the client's contact number, empty until shared.
func (c *Client) Phone() string {
	return c.phone
}

// CreatedAt returns when the client first contacted the service.
func (c *Client) CreatedAt() time.Time {
	return c.createdAt
}

// UpdateContact refreshes the display fields from a fresh Telegram contact.
// Empty values leave the corresponding field unchanged.
func (c *Client) UpdateContact(username, firstName, lastName string) {
	if v := strings.TrimSpace(username); v != "" {
		c.username = v
	}
	if v := strings.TrimSpace(firstName); v != "" {
		c.firstName = v
	}
	if v := strings.TrimSpace(lastName); v != "" {
		c.lastName = v
	}
}

// SetPhone stores the client's contact number.
//
// Returns:
//   - ValueIsRequiredError if the phone is blank
func (c *Client) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	c.phone = phone
	return nil
}

// setID sets the client's unique identifier with validation.
func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

// setTelegramID sets the client's Telegram identity with validation.
func (c *Client) setTelegramID(telegramID int64) error {
	if telegramID == 0 {
		return ErrTelegramIDIsRequired
	}

	c.telegramID = telegramID
	return nil
}
