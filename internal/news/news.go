// Package news fetches recent company headlines for ticker symbols from
// multiple sources: Finnhub company news, Alpaca market-data news, and
// Google News RSS.
package news

import (
	"context"
	"net/http"
	"sort"
	"time"

	"stockdash/internal/domain"
)

// lookback is the headline window, matching the dashboard's 30-day view.
const lookback = 30 * 24 * time.Hour

// Source fetches recent headlines for one ticker symbol, most recent
// first. An empty result is valid (no news) and distinct from an error.
type Source interface {
	// Name returns the source identifier.
	Name() string

	// Fetch returns headlines for symbol from the last 30 days.
	Fetch(ctx context.Context, symbol string) ([]domain.NewsItem, error)
}

// shared HTTP client for the plain-HTTP sources.
var httpClient = &http.Client{Timeout: 10 * time.Second}

// window returns the [start, end] fetch window ending now.
func window() (time.Time, time.Time) {
	end := time.Now().UTC()
	return end.Add(-lookback), end
}

// sortRecentFirst orders items newest first.
func sortRecentFirst(items []domain.NewsItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}
