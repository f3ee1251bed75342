// Package finnhub implements a typed client for the parts of the Finnhub
// REST API the dashboard uses: real-time quote, daily candles, company
// profile, and company news.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stockdash/internal/domain"
)

// DefaultBaseURL is the production Finnhub API endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

const providerName = "finnhub"

// Client is a Finnhub API client. All requests carry the API key as the
// "token" query parameter. The zero key is rejected before any request is
// made so a missing key is always a domain.AuthError, never a silent empty
// result.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client for the given endpoint and API key. An empty
// baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// get performs a GET against path with the given params, decoding the JSON
// body into out. Authentication failures are typed; everything else comes
// back as a plain error for the caller to wrap.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return &domain.AuthError{Provider: providerName, Reason: "missing API key"}
	}

	params.Set("token", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthError{Provider: providerName, Reason: "API key rejected"}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// wrap converts a non-auth error into a FetchError for the given symbol.
func wrap(symbol string, err error) error {
	if domain.IsAuthError(err) {
		return err
	}
	return &domain.FetchError{Provider: providerName, Symbol: symbol, Err: err}
}

// ---------------------------------------------------------------------------
// Quote
// ---------------------------------------------------------------------------

type quoteResponse struct {
	Current   float64 `json:"c"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Open      float64 `json:"o"`
	PrevClose float64 `json:"pc"`
	Timestamp int64   `json:"t"`
}

// Quote returns the current price for a symbol. Finnhub answers unknown
// symbols with an all-zero body, which is reported as a FetchError.
func (c *Client) Quote(ctx context.Context, symbol string) (float64, error) {
	var q quoteResponse
	params := url.Values{"symbol": {symbol}}
	if err := c.get(ctx, "/quote", params, &q); err != nil {
		return 0, wrap(symbol, err)
	}
	if q.Current == 0 && q.Timestamp == 0 {
		return 0, wrap(symbol, fmt.Errorf("no quote data"))
	}
	return q.Current, nil
}

// ---------------------------------------------------------------------------
// Candles
// ---------------------------------------------------------------------------

type candleResponse struct {
	Open       []float64 `json:"o"`
	High       []float64 `json:"h"`
	Low        []float64 `json:"l"`
	Close      []float64 `json:"c"`
	Volume     []float64 `json:"v"`
	Timestamps []int64   `json:"t"`
	Status     string    `json:"s"`
}

// Candles returns daily bars for a symbol in [from, to], oldest first.
// "no_data" (unknown symbol or empty range) and mismatched column lengths
// are FetchErrors.
func (c *Client) Candles(ctx context.Context, symbol string, from, to time.Time) ([]domain.Bar, error) {
	params := url.Values{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {fmt.Sprint(from.Unix())},
		"to":         {fmt.Sprint(to.Unix())},
	}

	var cr candleResponse
	if err := c.get(ctx, "/stock/candle", params, &cr); err != nil {
		return nil, wrap(symbol, err)
	}
	if cr.Status != "ok" {
		return nil, wrap(symbol, fmt.Errorf("candle status %q", cr.Status))
	}

	n := len(cr.Timestamps)
	if n == 0 || len(cr.Open) != n || len(cr.High) != n || len(cr.Low) != n || len(cr.Close) != n {
		return nil, wrap(symbol, fmt.Errorf("malformed candle response"))
	}

	bars := make([]domain.Bar, 0, n)
	for i := 0; i < n; i++ {
		bar := domain.Bar{
			Timestamp: time.Unix(cr.Timestamps[i], 0).UTC(),
			Open:      cr.Open[i],
			High:      cr.High[i],
			Low:       cr.Low[i],
			Close:     cr.Close[i],
		}
		if i < len(cr.Volume) {
			bar.Volume = int64(cr.Volume[i])
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// ---------------------------------------------------------------------------
// Company profile
// ---------------------------------------------------------------------------

type profileResponse struct {
	Name     string `json:"name"`
	Industry string `json:"finnhubIndustry"`
}

// Profile returns company display metadata for a symbol. Unknown symbols
// yield an empty object, which is mapped to a profile with the symbol as
// name rather than an error: the dashboard can render without metadata.
func (c *Client) Profile(ctx context.Context, symbol string) (domain.CompanyProfile, error) {
	var p profileResponse
	params := url.Values{"symbol": {symbol}}
	if err := c.get(ctx, "/stock/profile2", params, &p); err != nil {
		return domain.CompanyProfile{}, wrap(symbol, err)
	}
	if p.Name == "" {
		p.Name = symbol
	}
	return domain.CompanyProfile{Name: p.Name, Sector: p.Industry}, nil
}

// ---------------------------------------------------------------------------
// Company news
// ---------------------------------------------------------------------------

type newsArticle struct {
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// CompanyNews returns news articles for a symbol in [from, to]. Articles
// missing a headline or URL are dropped. An empty list is a valid result.
func (c *Client) CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]domain.NewsItem, error) {
	params := url.Values{
		"symbol": {symbol},
		"from":   {from.Format("2006-01-02")},
		"to":     {to.Format("2006-01-02")},
	}

	var articles []newsArticle
	if err := c.get(ctx, "/company-news", params, &articles); err != nil {
		return nil, wrap(symbol, err)
	}

	items := make([]domain.NewsItem, 0, len(articles))
	for _, a := range articles {
		if a.Headline == "" || a.URL == "" {
			continue
		}
		items = append(items, domain.NewsItem{
			Headline:    a.Headline,
			Source:      a.Source,
			URL:         a.URL,
			PublishedAt: time.Unix(a.Datetime, 0).UTC(),
		})
	}
	return items, nil
}
