// Package httpapi provides the HTTP JSON API for the stock dashboard,
// serving per-ticker quote, chart, and news data to the browser frontend.
package httpapi

import (
	"stockdash/internal/controller"
	"stockdash/internal/session"
)

// BarJSON is a single OHLCV bar.
type BarJSON struct {
	Time   int64   `json:"time"` // Unix ms
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume,omitempty"`
}

// ChangeJSON is the daily price change derived from the last two closes.
type ChangeJSON struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// QuoteJSON is the JSON representation of a quote snapshot.
type QuoteJSON struct {
	Symbol  string      `json:"symbol"`
	Price   float64     `json:"price"`
	Company string      `json:"company,omitempty"`
	Sector  string      `json:"sector,omitempty"`
	Change  *ChangeJSON `json:"change,omitempty"`
	History []BarJSON   `json:"history"`
}

// NewsItemJSON is a single headline.
type NewsItemJSON struct {
	Time     int64  `json:"time"` // Unix ms
	Headline string `json:"headline"`
	Source   string `json:"source,omitempty"`
	URL      string `json:"url,omitempty"`
}

// TickerJSON is the per-ticker dashboard entry.
type TickerJSON struct {
	Symbol     string         `json:"symbol"`
	State      string         `json:"state"`
	Quote      *QuoteJSON     `json:"quote,omitempty"`
	News       []NewsItemJSON `json:"news"`
	NewsNotice string         `json:"newsNotice,omitempty"`
	HasChart   bool           `json:"hasChart"`
	Error      string         `json:"error,omitempty"`
	UpdatedAt  int64          `json:"updatedAt,omitempty"` // Unix ms
}

// SessionJSON echoes the session configuration. The news API key itself is
// never echoed back, only whether one is set.
type SessionJSON struct {
	Tickers        []string `json:"tickers"`
	RefreshSeconds int      `json:"refreshSeconds"`
	Period         string   `json:"period"`
	Theme          string   `json:"theme"`
	NewsKeySet     bool     `json:"newsKeySet"`
}

// DashboardResponse is the top-level response for GET /api/dashboard.
type DashboardResponse struct {
	Session SessionJSON  `json:"session"`
	Tickers []TickerJSON `json:"tickers"`
}

// NewsResponse holds the headlines for one symbol.
type NewsResponse struct {
	Symbol   string         `json:"symbol"`
	Articles []NewsItemJSON `json:"articles"`
}

// SessionUpdateRequest is the body of PUT /api/session. Empty fields keep
// their current values; NewsAPIKey uses a pointer so an explicit empty
// string clears the key.
type SessionUpdateRequest struct {
	Tickers        string  `json:"tickers"`
	NewsAPIKey     *string `json:"newsApiKey"`
	RefreshSeconds *int    `json:"refreshSeconds"`
	Period         string  `json:"period"`
	Theme          string  `json:"theme"`
}

// convertQuote converts a snapshot into its JSON form.
func convertQuote(r *controller.TickerResult) *QuoteJSON {
	q := r.Quote
	if q == nil {
		return nil
	}

	out := &QuoteJSON{
		Symbol:  q.Symbol,
		Price:   q.Price,
		Company: q.Profile.Name,
		Sector:  q.Profile.Sector,
		History: make([]BarJSON, 0, len(q.History)),
	}
	if amount, pct, ok := q.DailyChange(); ok {
		out.Change = &ChangeJSON{Amount: amount, Percent: pct}
	}
	for _, b := range q.History {
		out.History = append(out.History, BarJSON{
			Time:   b.Timestamp.UnixMilli(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return out
}

// maxHeadlines caps the per-ticker headline list on the dashboard view.
// The full 30-day list stays available from the news endpoint.
const maxHeadlines = 5

// convertTicker converts one controller result into its JSON form.
func convertTicker(r controller.TickerResult) TickerJSON {
	news := r.News
	if len(news) > maxHeadlines {
		news = news[:maxHeadlines]
	}

	out := TickerJSON{
		Symbol:     r.Symbol,
		State:      r.State.String(),
		Quote:      convertQuote(&r),
		News:       make([]NewsItemJSON, 0, len(news)),
		NewsNotice: r.NewsNotice,
		HasChart:   len(r.Chart) > 0,
		Error:      r.Err,
	}
	if !r.UpdatedAt.IsZero() {
		out.UpdatedAt = r.UpdatedAt.UnixMilli()
	}
	for _, n := range news {
		out.News = append(out.News, NewsItemJSON{
			Time:     n.PublishedAt.UnixMilli(),
			Headline: n.Headline,
			Source:   n.Source,
			URL:      n.URL,
		})
	}
	return out
}

// convertSession converts a session config into its JSON echo.
func convertSession(s *session.Config) SessionJSON {
	return SessionJSON{
		Tickers:        s.Tickers,
		RefreshSeconds: int(s.RefreshInterval.Seconds()),
		Period:         s.Period,
		Theme:          s.Theme,
		NewsKeySet:     s.NewsAPIKey != "",
	}
}
