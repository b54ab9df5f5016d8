package orderrepo

import (
	"context"
	"errors"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/domain/model/order"
	"foodhub/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

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

// Add saves a new order and its line items. A unique violation on the
// order number surfaces as order.ErrDuplicateOrderNumber so the caller
// can regenerate the number and retry.
//
// The insert runs in a nested transaction. When Add is already inside
// an open transaction GORM turns it into a savepoint, so a unique
// violation aborts only the savepoint and the enclosing transaction
// stays usable for the retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return order.ErrDuplicateOrderNumber
		}
		return errs.NewPersistenceError("order insert", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves lifecycle changes of an existing order. Line items are
// written once at Add and never touched again.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("order update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AssignDeliveryPerson claims the order for the aggregate's delivery
// person. The update only touches rows still awaiting pickup with no
// courier; zero affected rows means another courier already claimed it.
func (r *GormOrderRepository) AssignDeliveryPerson(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.DeliveryPersonID() == nil {
		return errs.NewValueIsRequiredError("deliveryPersonID")
	}

	deliveryPersonID := aggregate.DeliveryPersonID().Bytes()
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND delivery_person_id IS NULL",
			aggregate.ID().Bytes(), order.StatusReadyForPickup.String()).
		Updates(map[string]interface{}{
			"delivery_person_id": deliveryPersonID,
			"status":             aggregate.Status().String(),
			"pickup_at":          aggregate.PickupAt(),
		})
	if result.Error != nil {
		return errs.NewPersistenceError("order assignment", result.Error)
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderAlreadyAssigned
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
