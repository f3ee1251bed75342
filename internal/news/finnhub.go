package news

import (
	"context"

	"stockdash/internal/domain"
	"stockdash/internal/finnhub"
	"stockdash/internal/util"
)

var _ Source = (*FinnhubSource)(nil)

// FinnhubSource fetches company news from the Finnhub API. It requires an
// API key: a missing or rejected key is a domain.AuthError, never a silent
// empty list. Requests are paced by the limiter when one is set.
type FinnhubSource struct {
	client  *finnhub.Client
	limiter *util.RateLimiter
}

// NewFinnhubSource creates a FinnhubSource. limiter may be nil.
func NewFinnhubSource(client *finnhub.Client, limiter *util.RateLimiter) *FinnhubSource {
	return &FinnhubSource{client: client, limiter: limiter}
}

// Name returns the source identifier.
func (s *FinnhubSource) Name() string { return "finnhub" }

// Fetch returns company headlines for symbol, most recent first.
func (s *FinnhubSource) Fetch(ctx context.Context, symbol string) ([]domain.NewsItem, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start, end := window()
	items, err := s.client.CompanyNews(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	sortRecentFirst(items)
	return items, nil
}
