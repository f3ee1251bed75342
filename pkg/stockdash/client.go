// Package stockdash provides a Go SDK for interacting with the stockdash
// dashboard API.
package stockdash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is an HTTP client for the dashboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new dashboard API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Session is the session configuration echo.
type Session struct {
	Tickers        []string `json:"tickers"`
	RefreshSeconds int      `json:"refreshSeconds"`
	Period         string   `json:"period"`
	Theme          string   `json:"theme"`
	NewsKeySet     bool     `json:"newsKeySet"`
}

// Change is a daily price change.
type Change struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// Quote is a quote snapshot for one ticker.
type Quote struct {
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
	Company string  `json:"company"`
	Sector  string  `json:"sector"`
	Change  *Change `json:"change"`
}

// NewsItem is a single headline.
type NewsItem struct {
	Time     int64  `json:"time"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// Ticker is the per-ticker dashboard entry.
type Ticker struct {
	Symbol     string     `json:"symbol"`
	State      string     `json:"state"`
	Quote      *Quote     `json:"quote"`
	News       []NewsItem `json:"news"`
	NewsNotice string     `json:"newsNotice"`
	HasChart   bool       `json:"hasChart"`
	Error      string     `json:"error"`
}

// Dashboard is the full dashboard view.
type Dashboard struct {
	Session Session  `json:"session"`
	Tickers []Ticker `json:"tickers"`
}

// SessionUpdate is the body for UpdateSession. Zero fields keep their
// current server-side values.
type SessionUpdate struct {
	Tickers        string  `json:"tickers,omitempty"`
	NewsAPIKey     *string `json:"newsApiKey,omitempty"`
	RefreshSeconds *int    `json:"refreshSeconds,omitempty"`
	Period         string  `json:"period,omitempty"`
	Theme          string  `json:"theme,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var eb errorBody
		if json.NewDecoder(resp.Body).Decode(&eb) == nil && eb.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, eb.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// GetDashboard retrieves the full dashboard view.
func (c *Client) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetChart retrieves the rendered PNG chart for a symbol.
func (c *Client) GetChart(ctx context.Context, symbol string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/chart/"+symbol, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /api/chart/%s: status %d", symbol, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// GetNews retrieves the headlines for a symbol.
func (c *Client) GetNews(ctx context.Context, symbol string) ([]NewsItem, error) {
	var resp struct {
		Articles []NewsItem `json:"articles"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/news/"+symbol, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// UpdateSession applies a session update and returns the new session echo.
func (c *Client) UpdateSession(ctx context.Context, update SessionUpdate) (*Session, error) {
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := c.do(ctx, http.MethodPut, "/api/session", bytes.NewReader(payload), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Refresh triggers a fetch-render cycle and returns the refreshed
// dashboard.
func (c *Client) Refresh(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodPost, "/api/refresh", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
