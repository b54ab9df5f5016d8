package queries

import (
	"context"

	"foodhub/internal/core/ports"

	"gorm.io/gorm"
)

// GetCartCountQueryHandler answers cart badge lookups cache-first.
// On a miss the count is read from the database and written back to the
// cache; cart commands invalidate the entry on every change.
type GetCartCountQueryHandler struct {
	db    *gorm.DB
	cache ports.CartCountCache
}

// NewGetCartCountQueryHandler creates a handler for cart count queries.
func NewGetCartCountQueryHandler(db *gorm.DB, cache ports.CartCountCache) GetCartCountQueryHandler {
	return GetCartCountQueryHandler{db: db, cache: cache}
}

// Handle executes the count query. Cache errors other than a miss are
// treated as a miss so a cache outage degrades to database reads.
func (h GetCartCountQueryHandler) Handle(ctx context.Context, query GetCartCountQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	count, err := h.cache.Get(ctx, query.CustomerID())
	if err == nil {
		return count, nil
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM cart_lines WHERE customer_id = ?
	`, query.CustomerID().Bytes()).Row()
	if err = row.Scan(&count); err != nil {
		return 0, err
	}

	_ = h.cache.Set(ctx, query.CustomerID(), count)

	return count, nil
}
