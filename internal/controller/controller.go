// Package controller drives the dashboard refresh cycle: it reads the
// session configuration, fans out per-ticker quote and news fetches,
// renders charts, and tracks a per-ticker display state. A failure in one
// ticker never affects its siblings.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"stockdash/internal/chart"
	"stockdash/internal/domain"
	"stockdash/internal/session"
)

// State is the display state of a single ticker.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateRendered
	StateError
)

// String returns the lowercase state label used in API responses.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateRendered:
		return "rendered"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrRefreshInFlight is returned when a refresh is requested while a cycle
// is still running. Overlapping triggers are skipped, not queued, so the
// same upstream is never hit twice concurrently for one ticker.
var ErrRefreshInFlight = errors.New("refresh cycle already in flight")

// QuoteFetcher fetches a quote snapshot for one symbol.
type QuoteFetcher interface {
	Fetch(ctx context.Context, symbol string, days int) (*domain.QuoteSnapshot, error)
}

// NewsFetcher fetches recent headlines for one symbol.
type NewsFetcher interface {
	Fetch(ctx context.Context, symbol string) ([]domain.NewsItem, error)
}

// NewsFactory builds a keyed news fetcher for the session's current API
// key. The key lives in the session and can change at runtime, so the
// fetcher is constructed per cycle.
type NewsFactory func(apiKey string) NewsFetcher

// RenderFunc renders a price series to an image with the named theme.
type RenderFunc func(theme, symbol string, series []domain.Bar) ([]byte, error)

// TickerResult is the outcome of the latest refresh cycle for one ticker.
// Partial data is kept even in the error state so the page can show what
// did arrive next to the message.
type TickerResult struct {
	Symbol     string
	State      State
	Quote      *domain.QuoteSnapshot
	News       []domain.NewsItem
	NewsNotice string // informational, e.g. no API key configured
	Chart      []byte
	Err        string
	UpdatedAt  time.Time
}

// Controller owns the session and the per-ticker results.
type Controller struct {
	quotes      QuoteFetcher
	newsFactory NewsFactory
	freeNews    NewsFetcher // keyless fallback source, may be nil
	render      RenderFunc
	log         *slog.Logger

	refreshing atomic.Bool

	mu      sync.RWMutex
	session *session.Config
	results map[string]*TickerResult
}

// New creates a Controller with the given collaborators. freeNews may be
// nil; render defaults to the chart package renderer when nil.
func New(sess *session.Config, quotes QuoteFetcher, newsFactory NewsFactory, freeNews NewsFetcher, render RenderFunc, log *slog.Logger) *Controller {
	if render == nil {
		render = func(theme, symbol string, series []domain.Bar) ([]byte, error) {
			return chart.NewRenderer(theme).Render(symbol, series)
		}
	}
	if log == nil {
		log = slog.Default()
	}

	c := &Controller{
		quotes:      quotes,
		newsFactory: newsFactory,
		freeNews:    freeNews,
		render:      render,
		log:         log,
		session:     sess.Clone(),
		results:     make(map[string]*TickerResult),
	}
	for _, sym := range sess.Tickers {
		c.results[sym] = &TickerResult{Symbol: sym, State: StateIdle}
	}
	return c
}

// Session returns a copy of the current session configuration.
func (c *Controller) Session() *session.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Clone()
}

// UpdateSession swaps in a new session configuration. Results for removed
// tickers are dropped; new tickers start idle. The next refresh picks up
// the new list.
func (c *Controller) UpdateSession(sess *session.Config) error {
	if len(sess.Tickers) == 0 {
		return &domain.InputError{Reason: "no tickers given"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = sess.Clone()

	keep := make(map[string]bool, len(sess.Tickers))
	for _, sym := range sess.Tickers {
		keep[sym] = true
		if _, ok := c.results[sym]; !ok {
			c.results[sym] = &TickerResult{Symbol: sym, State: StateIdle}
		}
	}
	for sym := range c.results {
		if !keep[sym] {
			delete(c.results, sym)
		}
	}
	return nil
}

// inSession reports whether symbol is in the current session ticker list.
// Callers must hold c.mu.
func (c *Controller) inSession(symbol string) bool {
	for _, sym := range c.session.Tickers {
		if sym == symbol {
			return true
		}
	}
	return false
}

// Results returns a copy of all ticker results in session order.
func (c *Controller) Results() []TickerResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]TickerResult, 0, len(c.session.Tickers))
	for _, sym := range c.session.Tickers {
		if r, ok := c.results[sym]; ok {
			out = append(out, *r)
		}
	}
	return out
}

// Result returns a copy of one ticker's result.
func (c *Controller) Result(symbol string) (TickerResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.results[symbol]
	if !ok {
		return TickerResult{}, false
	}
	return *r, true
}

// Refresh runs one fetch-render cycle over all session tickers. Fetches
// run in parallel and results are keyed by symbol, so partial-failure
// display is deterministic regardless of completion order. A second
// Refresh while one is running returns ErrRefreshInFlight.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer c.refreshing.Store(false)

	sess := c.Session()
	days := session.PeriodDays(sess.Period)

	c.mu.Lock()
	for _, sym := range sess.Tickers {
		if r, ok := c.results[sym]; ok {
			r.State = StateFetching
		} else {
			c.results[sym] = &TickerResult{Symbol: sym, State: StateFetching}
		}
	}
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, sym := range sess.Tickers {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			res := c.fetchTicker(ctx, sess, sym, days)
			c.mu.Lock()
			// The session may have changed mid-cycle; a result for a
			// ticker that was removed is dropped, not resurrected.
			if c.inSession(sym) {
				c.results[sym] = res
			}
			c.mu.Unlock()
		}(sym)
	}
	wg.Wait()

	c.log.Info("refresh cycle complete", "tickers", len(sess.Tickers))
	return nil
}

// fetchTicker runs the fetch → news → render pipeline for one symbol. Any
// fetcher or renderer failure puts this ticker (only) into the error state.
func (c *Controller) fetchTicker(ctx context.Context, sess *session.Config, symbol string, days int) *TickerResult {
	res := &TickerResult{Symbol: symbol, State: StateRendered, UpdatedAt: time.Now().UTC()}

	snap, err := c.quotes.Fetch(ctx, symbol, days)
	if err != nil {
		c.log.Warn("quote fetch failed", "symbol", symbol, "error", err)
		res.State = StateError
		res.Err = fmt.Sprintf("no data found for %s", symbol)
		return res
	}
	res.Quote = snap

	img, err := c.render(sess.Theme, symbol, snap.History)
	if err != nil {
		c.log.Warn("chart render failed", "symbol", symbol, "error", err)
		res.State = StateError
		if errors.Is(err, chart.ErrInsufficientData) {
			res.Err = fmt.Sprintf("not enough history to chart %s", symbol)
		} else {
			res.Err = fmt.Sprintf("could not render chart for %s", symbol)
		}
		return res
	}
	res.Chart = img

	news, notice, err := c.fetchNews(ctx, sess, symbol)
	if err != nil {
		c.log.Warn("news fetch failed", "symbol", symbol, "error", err)
		res.State = StateError
		if domain.IsAuthError(err) {
			res.Err = "news API key missing or rejected"
		} else {
			res.Err = fmt.Sprintf("could not load news for %s", symbol)
		}
		return res
	}
	res.News = news
	res.NewsNotice = notice

	return res
}

// fetchNews picks the news source for this cycle. With a session API key
// the keyed source is used; without one the keyless fallback serves, or
// news is skipped with a notice when no fallback is wired.
func (c *Controller) fetchNews(ctx context.Context, sess *session.Config, symbol string) ([]domain.NewsItem, string, error) {
	if sess.NewsAPIKey != "" && c.newsFactory != nil {
		items, err := c.newsFactory(sess.NewsAPIKey).Fetch(ctx, symbol)
		return items, "", err
	}
	if c.freeNews != nil {
		items, err := c.freeNews.Fetch(ctx, symbol)
		return items, "", err
	}
	return nil, "set a news API key to enable company news", nil
}

// Run drives the refresh timer until ctx is cancelled. It runs one cycle
// immediately, then re-reads the interval from the session before each
// tick so runtime updates take effect. A tick landing while a cycle is
// still in flight is skipped.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil && !errors.Is(err, ErrRefreshInFlight) {
		c.log.Warn("initial refresh", "error", err)
	}

	for {
		interval := c.Session().RefreshInterval
		wait := interval
		if wait <= 0 {
			// Timer disabled; re-check the session periodically.
			wait = 5 * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		if interval <= 0 {
			continue
		}
		if err := c.Refresh(ctx); err != nil {
			if errors.Is(err, ErrRefreshInFlight) {
				c.log.Debug("refresh tick skipped, cycle in flight")
			} else {
				c.log.Warn("refresh cycle", "error", err)
			}
		}
	}
}
