// Package ports defines the outbound interfaces of the dispatch core.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	// Returns ConflictError if a driver with the same Telegram id exists.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// UpdateProfile persists the driver's contact and vehicle columns.
	// It never touches account_status or busy, so a profile edit cannot
	// clobber a concurrent block or assignment.
	UpdateProfile(ctx context.Context, aggregate *driver.Driver) error

	// UpdateAccountStatus persists the driver's account status column only.
	UpdateAccountStatus(ctx context.Context, aggregate *driver.Driver) error

	// Release clears the driver's busy flag. The UPDATE is guarded on the
	// flag still being set; releasing a driver that is not busy returns
	// InvalidStateError.
	Release(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	// Returns ObjectNotFoundError if no such driver exists.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByTelegramID retrieves a driver by their Telegram identity.
	// Returns (nil, nil) when no driver with that identity exists:
	// absence drives the lazy get-or-create registration path.
	GetByTelegramID(ctx context.Context, telegramID int64) (*driver.Driver, error)

	// UpdateGuardedAvailable sets the driver's busy flag only if the
	// stored row is still available (active and not busy). The UPDATE
	// carries the availability predicate so that of two concurrent
	// assignments exactly one commits; the loser gets
	// DriverUnavailableError and must roll back.
	UpdateGuardedAvailable(ctx context.Context, aggregate *driver.Driver) error
}
