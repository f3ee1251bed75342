package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"stockdash/internal/domain"
)

var _ Provider = (*AlpacaProvider)(nil)

// AlpacaProvider fetches snapshots from the Alpaca market-data API: daily
// bars and the latest trade from the data endpoint, the company name from
// the trading API's asset catalog. Alpaca assets carry no sector, so the
// profile sector is left empty.
type AlpacaProvider struct {
	md      *marketdata.Client
	trading *alpaca.Client
}

// NewAlpacaProvider creates an AlpacaProvider with the given credentials.
// Empty URLs select the SDK defaults.
func NewAlpacaProvider(apiKey, apiSecret, baseURL, dataURL string) *AlpacaProvider {
	mdOpts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		mdOpts.BaseURL = dataURL
	}

	tradingOpts := alpaca.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if baseURL != "" {
		tradingOpts.BaseURL = baseURL
	}

	return &AlpacaProvider{
		md:      marketdata.NewClient(mdOpts),
		trading: alpaca.NewClient(tradingOpts),
	}
}

// Name returns the provider identifier.
func (p *AlpacaProvider) Name() string { return "alpaca" }

// Fetch returns a snapshot built from daily bars, the latest trade price,
// and the asset name. Metadata and latest-trade failures degrade (the bars
// carry enough to render); missing bars are a hard FetchError.
func (p *AlpacaProvider) Fetch(ctx context.Context, symbol string, days int) (*domain.QuoteSnapshot, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	alpacaBars, err := p.md.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Split,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, &domain.FetchError{Provider: p.Name(), Symbol: symbol, Err: err}
	}
	if len(alpacaBars) == 0 {
		return nil, &domain.FetchError{Provider: p.Name(), Symbol: symbol, Err: fmt.Errorf("no bars returned")}
	}

	bars := make([]domain.Bar, 0, len(alpacaBars))
	for _, b := range alpacaBars {
		bars = append(bars, domain.Bar{
			Timestamp: b.Timestamp.UTC(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    int64(b.Volume),
		})
	}
	sortBars(bars)

	// Latest trade gives an intraday price; fall back to the last close.
	price := bars[len(bars)-1].Close
	if trade, err := p.md.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{}); err == nil && trade != nil && trade.Price > 0 {
		price = trade.Price
	}

	profile := domain.CompanyProfile{Name: symbol}
	if asset, err := p.trading.GetAsset(symbol); err == nil && asset.Name != "" {
		profile.Name = asset.Name
	}

	return &domain.QuoteSnapshot{
		Symbol:    symbol,
		Price:     price,
		History:   bars,
		Profile:   profile,
		FetchedAt: time.Now().UTC(),
	}, nil
}
