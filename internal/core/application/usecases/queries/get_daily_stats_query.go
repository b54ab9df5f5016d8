package queries

import (
	"errors"
	"time"

	"foodhub/internal/core/domain/model/kernel"
)

var ErrGetDailyStatsQueryIsNotConstructed = errors.New(
	"GetDailyStatsQuery must be created via NewGetDailyStatsQuery constructor",
)

// GetDailyStatsQuery retrieves platform-wide numbers for one calendar day.
type GetDailyStatsQuery struct { //nolint:recvcheck //using for validation
	day time.Time

	guard kernel.ConstructorGuard
}

// NewGetDailyStatsQuery creates a daily stats query. The day is truncated
// to UTC midnight.
func NewGetDailyStatsQuery(day time.Time) (GetDailyStatsQuery, error) {
	if day.IsZero() {
		return GetDailyStatsQuery{}, errors.New("day is required")
	}

	return GetDailyStatsQuery{
		day:   day.UTC().Truncate(24 * time.Hour),
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDailyStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDailyStatsQueryIsNotConstructed)
}

// Day returns the UTC day being summarized.
func (q GetDailyStatsQuery) Day() time.Time {
	return q.day
}

// GetDailyStatsQueryResponse is one day of platform activity. Revenue
// counts delivered orders only.
type GetDailyStatsQueryResponse struct {
	Day             string  `json:"day"`
	OrdersPlaced    int64   `json:"orders_placed"`
	OrdersDelivered int64   `json:"orders_delivered"`
	OrdersCancelled int64   `json:"orders_cancelled"`
	Revenue         float64 `json:"revenue"`
}
