package driverrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/driver"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = pq.ErrorCode("23505")

// GormDriverRepository implements DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver to the database.
// A unique violation on the Telegram identity means two first contacts raced
// and is reported as a ConflictError.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause("driver telegram id", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateProfile saves the driver's contact and vehicle columns. The busy
// flag and account status are never part of this UPDATE, so a profile edit
// made against a stale read cannot undo a concurrent assignment or block.
func (r *GormDriverRepository) UpdateProfile(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ?", dto.ID).
		Updates(toProfileMap(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateAccountStatus saves the driver's account status column only.
func (r *GormDriverRepository) UpdateAccountStatus(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ?", dto.ID).
		Update("account_status", dto.AccountStatus)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Release clears the driver's busy flag. The UPDATE is guarded on the flag
// still being set, so a release raced by another trip transition affects
// zero rows and surfaces as an InvalidStateError instead of silently
// rewriting the row.
func (r *GormDriverRepository) Release(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ? AND busy = true", dto.ID).
		Update("busy", false)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidStateErrorWithCause(
			"driver busy flag",
			fmt.Errorf("driver %s is not busy", aggregate.ID()),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTelegramID retrieves a driver by their Telegram identity.
// Returns (nil, nil) when no driver with that identity exists.
func (r *GormDriverRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*driver.Driver, error) {
	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "telegram_id = ?", telegramID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateGuardedAvailable sets the driver's busy flag only if the stored row
// is still available, active and not busy. The availability predicate rides
// on the UPDATE itself, so of two concurrent claims exactly one sees an
// affected row; the loser gets a DriverUnavailableError and must roll back.
// Only the busy column is written.
func (r *GormDriverRepository) UpdateGuardedAvailable(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ? AND busy = false AND account_status = ?", dto.ID, driver.Active.String()).
		Update("busy", dto.Busy)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewDriverUnavailableErrorWithCause(
			"driver",
			fmt.Errorf("driver %s is no longer available", aggregate.ID()),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
