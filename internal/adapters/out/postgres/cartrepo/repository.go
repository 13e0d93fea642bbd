package cartrepo

import (
	"context"
	"errors"
	"time"

	"pichuka/internal/core/domain/model/cart"
	"pichuka/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart to the database.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceUnavailableError("cart insert", err)
	}

	r.tracker.TrackAggregate(aggregate.Customer(), aggregate)
	return nil
}

// Update saves an existing cart to the database. The carts row is updated
// with a version predicate, so a concurrent writer that already bumped the
// version makes this write match zero rows and fail with a version conflict
// instead of silently overwriting the other writer's lines.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CartDTO{}).
		Where("customer = ? AND version = ?", dto.Customer, dto.Version).
		Updates(map[string]any{
			"updated_at": dto.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return errs.NewPersistenceUnavailableError("cart update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("cart")
	}

	// The line set is replaced wholesale; diffing coalesced lines buys nothing.
	if err := r.db.WithContext(ctx).
		Where("cart_customer = ?", dto.Customer).
		Delete(&CartItemDTO{}).Error; err != nil {
		return errs.NewPersistenceUnavailableError("cart items delete", err)
	}
	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
			return errs.NewPersistenceUnavailableError("cart items insert", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.Customer(), aggregate)
	return nil
}

// GetByCustomer retrieves the customer's cart with its lines.
func (r *GormCartRepository) GetByCustomer(ctx context.Context, customer string) (*cart.Cart, error) {
	var dto CartDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "customer = ?", customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customer)
		}
		return nil, errs.NewPersistenceUnavailableError("cart select", err)
	}

	return toDomain(dto)
}

// GetStale retrieves non-empty carts untouched since the cutoff.
func (r *GormCartRepository) GetStale(ctx context.Context, cutoff time.Time) ([]*cart.Cart, error) {
	var dtos []CartDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("updated_at < ?", cutoff).
		Where("customer IN (SELECT cart_customer FROM cart_items)").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceUnavailableError("stale carts select", err)
	}

	carts := make([]*cart.Cart, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		carts = append(carts, aggregate)
	}

	return carts, nil
}
