package queries

import (
	"context"
	"encoding/json"
	"time"

	"foodhub/internal/core/domain/model/kernel"
	"foodhub/internal/core/ports"

	"gorm.io/gorm"
)

// GetDailyStatsQueryHandler summarizes one day of platform activity.
// A background job periodically snapshots the current day into the cache;
// reads prefer the snapshot and fall back to a live aggregation.
type GetDailyStatsQueryHandler struct {
	db    *gorm.DB
	cache ports.DailyStatsCache
}

// NewGetDailyStatsQueryHandler creates a handler for daily stats queries.
func NewGetDailyStatsQueryHandler(db *gorm.DB, cache ports.DailyStatsCache) GetDailyStatsQueryHandler {
	return GetDailyStatsQueryHandler{db: db, cache: cache}
}

// Handle answers from the snapshot when one exists for the day, otherwise
// aggregates live and refreshes the snapshot.
func (h GetDailyStatsQueryHandler) Handle(
	ctx context.Context, query GetDailyStatsQuery,
) (GetDailyStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDailyStatsQueryResponse{}, err
	}

	day := query.Day().Format(time.DateOnly)

	if payload, err := h.cache.Get(ctx, day); err == nil {
		var cached GetDailyStatsQueryResponse
		if json.Unmarshal(payload, &cached) == nil {
			return cached, nil
		}
	}

	response, err := h.aggregate(ctx, query.Day())
	if err != nil {
		return GetDailyStatsQueryResponse{}, err
	}

	if payload, marshalErr := json.Marshal(response); marshalErr == nil {
		_ = h.cache.Set(ctx, day, payload)
	}

	return response, nil
}

// Refresh recomputes the day and overwrites the snapshot, bypassing any
// cached value. Used by the snapshot job to keep the current day fresh.
func (h GetDailyStatsQueryHandler) Refresh(ctx context.Context, day time.Time) error {
	response, err := h.aggregate(ctx, day)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return h.cache.Set(ctx, day.Format(time.DateOnly), payload)
}

func (h GetDailyStatsQueryHandler) aggregate(
	ctx context.Context, day time.Time,
) (GetDailyStatsQueryResponse, error) {
	response := GetDailyStatsQueryResponse{Day: day.Format(time.DateOnly)}
	nextDay := day.Add(24 * time.Hour)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS orders_placed,
			COUNT(*) FILTER (WHERE status = 'delivered') AS orders_delivered,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS orders_cancelled,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'delivered'), 0) AS revenue
		FROM orders
		WHERE created_at >= ? AND created_at < ?
	`, day, nextDay).Row()

	if err := row.Scan(
		&response.OrdersPlaced,
		&response.OrdersDelivered,
		&response.OrdersCancelled,
		&response.Revenue,
	); err != nil {
		return GetDailyStatsQueryResponse{}, err
	}

	response.Revenue = kernel.RoundMoney(response.Revenue)

	return response, nil
}
