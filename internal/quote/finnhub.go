package quote

import (
	"context"
	"time"

	"stockdash/internal/domain"
	"stockdash/internal/finnhub"
)

var _ Provider = (*FinnhubProvider)(nil)

// FinnhubProvider fetches snapshots from the Finnhub API: daily candles,
// the real-time quote, and the company profile (name + industry sector).
type FinnhubProvider struct {
	client *finnhub.Client
}

// NewFinnhubProvider creates a FinnhubProvider on top of an existing client.
func NewFinnhubProvider(client *finnhub.Client) *FinnhubProvider {
	return &FinnhubProvider{client: client}
}

// Name returns the provider identifier.
func (p *FinnhubProvider) Name() string { return "finnhub" }

// Fetch returns a snapshot for symbol. Candles are mandatory; the quote and
// profile calls degrade to the last close and the bare symbol when they
// fail, so one flaky endpoint does not blank the whole ticker.
func (p *FinnhubProvider) Fetch(ctx context.Context, symbol string, days int) (*domain.QuoteSnapshot, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	bars, err := p.client.Candles(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	sortBars(bars)

	price := bars[len(bars)-1].Close
	if current, err := p.client.Quote(ctx, symbol); err == nil && current > 0 {
		price = current
	}

	profile := domain.CompanyProfile{Name: symbol}
	if prof, err := p.client.Profile(ctx, symbol); err == nil {
		profile = prof
	}

	return &domain.QuoteSnapshot{
		Symbol:    symbol,
		Price:     price,
		History:   bars,
		Profile:   profile,
		FetchedAt: time.Now().UTC(),
	}, nil
}
