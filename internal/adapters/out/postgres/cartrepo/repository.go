package cartrepo

import (
	"context"
	"errors"

	"foodhub/internal/core/domain/model/cart"
	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddOrIncrement inserts the line, or bumps the quantity of the line that
// already holds this (customer, item, customization) triple. The merge is
// a single INSERT ... ON CONFLICT so concurrent adds serialize in the
// database rather than racing through read-then-write.
func (r *GormCartRepository) AddOrIncrement(
	ctx context.Context, line *cart.CartLine,
) (*cart.CartLine, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(line)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "customer_id"}, {Name: "menu_item_id"}, {Name: "customization"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(&dto).Error
	if err != nil {
		return nil, errs.NewPersistenceError("cart line upsert", err)
	}

	var merged CartLineDTO
	err = r.db.WithContext(ctx).
		First(&merged, "customer_id = ? AND menu_item_id = ? AND customization = ?",
			dto.CustomerID, dto.MenuItemID, dto.Customization).Error
	if err != nil {
		return nil, errs.NewPersistenceError("cart line readback", err)
	}

	result, err := toDomain(merged)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(result.ID(), result)
	return result, nil
}

// Get retrieves a line by id scoped to its owner.
func (r *GormCartRepository) Get(
	ctx context.Context, customerID, lineID kernel.UUID,
) (*cart.CartLine, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if err := lineID.Validate(); err != nil {
		return nil, err
	}

	var dto CartLineDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND customer_id = ?", lineID.Bytes(), customerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cartLine", lineID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists quantity changes of an existing line.
func (r *GormCartRepository) Update(ctx context.Context, line *cart.CartLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	dto := fromDomain(line)
	result := r.db.WithContext(ctx).Model(&CartLineDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]interface{}{
			"quantity":   dto.Quantity,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cartLine", line.ID().String())
	}

	r.tracker.TrackAggregate(line.ID(), line)
	return nil
}

// Remove deletes a line scoped to its owner.
func (r *GormCartRepository) Remove(ctx context.Context, customerID, lineID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if err := lineID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Delete(&CartLineDTO{}, "id = ? AND customer_id = ?", lineID.Bytes(), customerID.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cartLine", lineID.String())
	}

	return nil
}

// Clear deletes every line of the customer's cart.
func (r *GormCartRepository) Clear(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Delete(&CartLineDTO{}, "customer_id = ?", customerID.Bytes()).Error
}

// GetByCustomer returns the customer's lines ordered by creation time.
func (r *GormCartRepository) GetByCustomer(
	ctx context.Context, customerID kernel.UUID,
) ([]*cart.CartLine, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartLineDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	lines := make([]*cart.CartLine, 0, len(dtos))
	for _, dto := range dtos {
		line, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// Count returns the number of lines in the customer's cart.
func (r *GormCartRepository) Count(ctx context.Context, customerID kernel.UUID) (int64, error) {
	if err := customerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&CartLineDTO{}).
		Where("customer_id = ?", customerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
