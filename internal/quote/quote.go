// Package quote fetches point-in-time quote snapshots for ticker symbols
// from a market-data provider: current price, daily price history, and
// company metadata.
package quote

import (
	"context"
	"sort"

	"stockdash/internal/domain"
)

// Provider fetches quote snapshots from one market-data source.
type Provider interface {
	// Name returns the provider identifier (e.g. "alpaca", "finnhub").
	Name() string

	// Fetch returns a fresh snapshot for symbol with up to days of daily
	// history. The history is non-empty and chronologically ordered
	// (oldest first) on success. A single failed fetch surfaces as a
	// domain.FetchError; there is no retry and no caching.
	Fetch(ctx context.Context, symbol string, days int) (*domain.QuoteSnapshot, error)
}

// sortBars enforces the chronological-order invariant on a history series.
func sortBars(bars []domain.Bar) {
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
}
