package ports

import (
	"context"

	"foodhub/internal/core/domain/model/kernel"
)

// ErrCacheMiss is returned by cache reads when no value is stored for
// the key. Callers fall through to the database on a miss.
var ErrCacheMiss = cacheMissError{}

type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

// CartCountCache caches per-customer cart line counts for the badge
// endpoint. Cart commands invalidate the entry; the next read repopulates
// it from the database.
type CartCountCache interface {
	Get(ctx context.Context, customerID kernel.UUID) (int64, error)
	Set(ctx context.Context, customerID kernel.UUID, count int64) error
	Invalidate(ctx context.Context, customerID kernel.UUID) error
}

// DailyStatsCache stores the rendered platform-wide daily statistics
// snapshot, keyed by day. The snapshot job refreshes it; the query falls
// back to the database on a miss.
type DailyStatsCache interface {
	Get(ctx context.Context, day string) ([]byte, error)
	Set(ctx context.Context, day string, payload []byte) error
}
