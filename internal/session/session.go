// Package session holds the per-session dashboard configuration: which
// tickers to track, the news API key, the refresh interval, and chart
// options. A session is created at startup from config defaults, mutated
// only through explicit updates, and discarded at shutdown. Nothing
// persists across runs.
package session

import (
	"strings"
	"time"

	"stockdash/internal/domain"
)

// Config is the session configuration passed into each refresh cycle.
type Config struct {
	Tickers         []string
	NewsAPIKey      string
	RefreshInterval time.Duration // 0 disables the timer
	Period          string        // history preset: 1mo ... max
	Theme           string
}

// periodDays maps the history presets to day counts.
var periodDays = map[string]int{
	"5d":  5,
	"1mo": 30,
	"3mo": 91,
	"6mo": 182,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
	"max": 3650,
}

// PeriodDays returns the day count for a history preset, defaulting to six
// months for unknown presets.
func PeriodDays(period string) int {
	if d, ok := periodDays[period]; ok {
		return d
	}
	return periodDays["6mo"]
}

// ParseTickers parses a free-text ticker list. Symbols may be separated by
// commas and/or whitespace; they are uppercased and deduplicated in input
// order. An input with no symbols is a domain.InputError.
func ParseTickers(input string) ([]string, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	seen := make(map[string]bool, len(fields))
	tickers := make([]string, 0, len(fields))
	for _, f := range fields {
		sym := strings.ToUpper(strings.TrimSpace(f))
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		tickers = append(tickers, sym)
	}

	if len(tickers) == 0 {
		return nil, &domain.InputError{Reason: "no tickers given"}
	}
	return tickers, nil
}

// New builds a session config from raw inputs, validating the ticker list.
func New(tickers, newsAPIKey string, refreshSeconds int, period, theme string) (*Config, error) {
	parsed, err := ParseTickers(tickers)
	if err != nil {
		return nil, err
	}
	return &Config{
		Tickers:         parsed,
		NewsAPIKey:      newsAPIKey,
		RefreshInterval: time.Duration(refreshSeconds) * time.Second,
		Period:          period,
		Theme:           theme,
	}, nil
}

// Clone returns a deep copy, so a caller can hold a stable view while the
// session is updated concurrently.
func (c *Config) Clone() *Config {
	out := *c
	out.Tickers = append([]string(nil), c.Tickers...)
	return &out
}
