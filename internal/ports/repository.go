package ports

import (
	"context"
	"time"

	"volumeProfiler/internal/domain"
)

// BarRepository defines the interface for the local bar cache.
// The profile engine itself is persistence-free; the cache sits in front of
// the market-data provider so repeated profile builds over the same window
// do not refetch from the exchange.
type BarRepository interface {
	// UpsertBars inserts or replaces bars keyed by (symbol, interval, time).
	UpsertBars(ctx context.Context, bars []*domain.Bar) error

	// GetBarsRange retrieves cached bars for a symbol/interval with
	// time in [start, end], ordered time-ascending.
	GetBarsRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Bar, error)

	// CountBarsRange counts cached bars for a symbol/interval within [start, end].
	CountBarsRange(ctx context.Context, symbol, interval string, start, end time.Time) (int, error)
}
