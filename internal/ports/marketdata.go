package ports

import (
	"context"
	"time"

	"volumeProfiler/internal/domain"
)

// MarketDataProvider defines the interface for fetching historical bar data
// from an exchange. This abstraction decouples the profile engine and the
// application service from any specific exchange implementation.
type MarketDataProvider interface {
	// GetBars retrieves the most recent bars for the given symbol and interval.
	GetBars(ctx context.Context, symbol, interval string, limit int) ([]*domain.Bar, error)

	// GetBarsRange retrieves all bars for a symbol/interval between start and end time,
	// paging through the exchange API as needed. Bars are returned time-ascending.
	GetBarsRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Bar, error)

	// Ping checks connectivity to the exchange API.
	Ping(ctx context.Context) error

	// GetServerTime retrieves the current server time from the exchange.
	GetServerTime(ctx context.Context) (time.Time, error)
}
