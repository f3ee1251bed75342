package news

import (
	"context"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"stockdash/internal/domain"
)

var _ Source = (*AlpacaSource)(nil)

// AlpacaSource fetches news from the Alpaca market-data news API.
type AlpacaSource struct {
	client *marketdata.Client
}

// NewAlpacaSource creates an AlpacaSource on top of an existing
// market-data client.
func NewAlpacaSource(client *marketdata.Client) *AlpacaSource {
	return &AlpacaSource{client: client}
}

// Name returns the source identifier.
func (s *AlpacaSource) Name() string { return "alpaca" }

// Fetch returns headlines for symbol, most recent first.
func (s *AlpacaSource) Fetch(ctx context.Context, symbol string) ([]domain.NewsItem, error) {
	start, end := window()

	articles, err := s.client.GetNews(marketdata.GetNewsRequest{
		Symbols:    []string{symbol},
		Start:      start,
		End:        end,
		TotalLimit: 50,
		Sort:       marketdata.SortDesc,
	})
	if err != nil {
		return nil, &domain.FetchError{Provider: s.Name(), Symbol: symbol, Err: err}
	}

	items := make([]domain.NewsItem, 0, len(articles))
	for _, a := range articles {
		if a.Headline == "" {
			continue
		}
		items = append(items, domain.NewsItem{
			Headline:    a.Headline,
			Source:      "alpaca",
			URL:         a.URL,
			PublishedAt: a.CreatedAt,
		})
	}
	sortRecentFirst(items)
	return items, nil
}
