package orderrepo

import (
	"context"
	"errors"

	"pichuka/internal/core/domain/model/kernel"
	"pichuka/internal/core/domain/model/order"
	"pichuka/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly placed order with its item snapshots.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceUnavailableError("order insert", err)
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update saves a transition on an existing order. The orders row is updated
// with a version predicate; a concurrent transition that already bumped the
// version makes this write match zero rows and fail with a version conflict,
// which is what serializes racing writers on the same order.
//
// History rows are append-only: only entries past the already persisted count
// are inserted, in the same transaction as the status, so the audit trail can
// never run ahead of or behind the order row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":                dto.Status,
			"estimated_delivery":    dto.EstimatedDelivery,
			"notes":                 dto.Notes,
			"delivered_at":          dto.DeliveredAt,
			"delivered_by_identity": dto.DeliveredByIdentity,
			"delivered_by_role":     dto.DeliveredByRole,
			"delivered_by_position": dto.DeliveredByPosition,
			"version":               gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return errs.NewPersistenceUnavailableError("order update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order")
	}

	var persisted int64
	if err := r.db.WithContext(ctx).Model(&OrderHistoryDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error; err != nil {
		return errs.NewPersistenceUnavailableError("order history count", err)
	}
	if int(persisted) < len(dto.History) {
		fresh := dto.History[persisted:]
		if err := r.db.WithContext(ctx).Create(&fresh).Error; err != nil {
			return errs.NewPersistenceUnavailableError("order history insert", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves an order by ID, including items and status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("order_status_history.id ASC") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewPersistenceUnavailableError("order select", err)
	}

	return toDomain(dto)
}
