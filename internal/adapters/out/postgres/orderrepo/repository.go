package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/kernel"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/core/domain/model/order"
	"github.com/vorobyovigor/TaxiOnlineBot/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = pq.ErrorCode("23505")

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
// A unique violation on the active order index means the client placed a
// second order concurrently and is reported as a ConflictError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause("active order", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByClient retrieves the client's order in New, Broadcast, or
// Assigned status. Returns (nil, nil) when the client has no active order.
func (r *GormOrderRepository) GetActiveByClient(ctx context.Context, clientID kernel.UUID) (*order.Order, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "client_id = ? AND status IN ?", clientID.Bytes(), activeStatusTokens()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInNewStatus retrieves orders still in New status, oldest first.
func (r *GormOrderRepository) GetAllInNewStatus(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&dtos, "status = ?", order.New.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateGuarded saves the order's new state only if the stored row is still
// in one of the expected statuses. The status predicate rides on the UPDATE
// itself, so of two concurrent writers exactly one sees an affected row; the
// loser gets an InvalidStateError and must roll back.
func (r *GormOrderRepository) UpdateGuarded(ctx context.Context, aggregate *order.Order, expected ...order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	tokens := make([]string, 0, len(expected))
	for _, status := range expected {
		tokens = append(tokens, status.String())
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status IN ?", dto.ID, tokens).
		Updates(map[string]any{
			"driver_id":     dto.DriverID,
			"status":        dto.Status,
			"cancel_reason": dto.CancelReason,
			"assigned_at":   dto.AssignedAt,
			"finished_at":   dto.FinishedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidStateErrorWithCause(
			"order status",
			fmt.Errorf("order %s already left statuses %v", aggregate.ID(), tokens),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// activeStatusTokens lists the persisted tokens of the statuses that count
// toward a client's single active order.
func activeStatusTokens() []string {
	return []string{order.New.String(), order.Broadcast.String(), order.Assigned.String()}
}
