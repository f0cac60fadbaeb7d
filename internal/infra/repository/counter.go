package repository

import (
	"context"

	"grocery-api/internal/infra"
	"grocery-api/internal/infra/db"
)

// CounterRepository backs daily-sequential order numbering. The
// read-increment-write is a single upsert so concurrent callers can
// never observe the same count for the same day.
type CounterRepository struct{}

func NewCounterRepository() *CounterRepository {
	return &CounterRepository{}
}

// Next increments and returns the counter for the given key (one per
// calendar day, e.g. "orders-20251106"), creating it at 1 when absent.
func (r *CounterRepository) Next(ctx context.Context, dbtx db.DBTX, key string) (int, error) {
	var count int
	err := dbtx.QueryRow(ctx, `
		INSERT INTO order_counters (day, count, updated_at)
		VALUES ($1, 1, now())
		ON CONFLICT (day) DO UPDATE SET
			count = order_counters.count + 1,
			updated_at = now()
		RETURNING count`, key).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to advance order counter", err)
	}
	return count, nil
}
