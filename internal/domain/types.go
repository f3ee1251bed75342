// Package domain defines the core value types shared across the dashboard:
// price bars, quote snapshots, company profiles, and news items.
package domain

import "time"

// Bar is a single OHLCV bar in a historical price series.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// CompanyProfile holds display metadata for a security.
type CompanyProfile struct {
	Name   string
	Sector string
}

// QuoteSnapshot is a point-in-time view of one ticker: current price,
// chronologically ordered history (oldest first), and company metadata.
// Snapshots are created fresh on every fetch and never cached.
type QuoteSnapshot struct {
	Symbol    string
	Price     float64
	History   []Bar
	Profile   CompanyProfile
	FetchedAt time.Time
}

// DailyChange returns the absolute and percentage change between the last
// two closes in the history, and false if fewer than two bars exist.
func (q *QuoteSnapshot) DailyChange() (change, pct float64, ok bool) {
	n := len(q.History)
	if n < 2 {
		return 0, 0, false
	}
	prev := q.History[n-2].Close
	last := q.History[n-1].Close
	if prev == 0 {
		return 0, 0, false
	}
	change = last - prev
	return change, change / prev * 100, true
}

// NewsItem is a single headline for a ticker.
type NewsItem struct {
	Headline    string
	Source      string
	URL         string
	PublishedAt time.Time
}
