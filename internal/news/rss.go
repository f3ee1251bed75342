package news

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stockdash/internal/domain"
	"stockdash/internal/util"
)

var _ Source = (*GoogleRSSSource)(nil)

type rssResponse struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

// GoogleRSSSource fetches headlines from the Google News RSS feed. It
// needs no API key, which makes it the fallback when no Finnhub key is
// configured.
type GoogleRSSSource struct {
	baseURL string
	limiter *util.RateLimiter
}

// NewGoogleRSSSource creates a GoogleRSSSource. An empty baseURL selects
// the production feed. limiter may be nil.
func NewGoogleRSSSource(baseURL string, limiter *util.RateLimiter) *GoogleRSSSource {
	if baseURL == "" {
		baseURL = "https://news.google.com/rss/search"
	}
	return &GoogleRSSSource{baseURL: baseURL, limiter: limiter}
}

// Name returns the source identifier.
func (s *GoogleRSSSource) Name() string { return "google" }

// Fetch returns headlines for symbol from the last 30 days, most recent
// first.
func (s *GoogleRSSSource) Fetch(ctx context.Context, symbol string) ([]domain.NewsItem, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.QueryEscape(symbol + " stock")
	u := s.baseURL + "?q=" + q + "&hl=en-US&gl=US&ceid=US:en"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.FetchError{Provider: s.Name(), Symbol: symbol, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Provider: s.Name(), Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, &domain.FetchError{Provider: s.Name(), Symbol: symbol, Err: err}
	}

	start, end := window()

	var items []domain.NewsItem
	for _, item := range rss.Channel.Items {
		t, err := time.Parse(time.RFC1123Z, item.PubDate)
		if err != nil {
			t, err = time.Parse(time.RFC1123, item.PubDate)
			if err != nil {
				continue
			}
		}
		if t.Before(start) || t.After(end) {
			continue
		}

		// Google appends " - Publisher" to the title; keep it as the source.
		headline := item.Title
		source := "google"
		if idx := strings.LastIndex(headline, " - "); idx > 0 {
			source = headline[idx+3:]
			headline = headline[:idx]
		}

		items = append(items, domain.NewsItem{
			Headline:    headline,
			Source:      source,
			URL:         item.Link,
			PublishedAt: t.UTC(),
		})
	}
	sortRecentFirst(items)
	return items, nil
}
