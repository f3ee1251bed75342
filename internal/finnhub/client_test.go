package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockdash/internal/domain"
)

func TestQuoteMissingKey(t *testing.T) {
	c := NewClient("http://unused", "")
	_, err := c.Quote(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("Quote with empty key should fail")
	}
	if !domain.IsAuthError(err) {
		t.Errorf("want AuthError, got %T: %v", err, err)
	}
}

func TestQuoteKeyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key")
	_, err := c.Quote(context.Background(), "AAPL")
	if !domain.IsAuthError(err) {
		t.Errorf("want AuthError on 401, got %v", err)
	}
}

func TestCandles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/candle" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "key" {
			t.Errorf("token not forwarded")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"o":[10,11,12],"h":[11,12,13],"l":[9,10,11],"c":[10.5,11.5,12.5],
			"v":[1000,2000,3000],"t":[1717200000,1717286400,1717372800],"s":"ok"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	bars, err := c.Candles(context.Background(), "AAPL", time.Unix(1717200000, 0), time.Unix(1717372800, 0))
	if err != nil {
		t.Fatalf("Candles returned error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i].Timestamp.After(bars[i-1].Timestamp) {
			t.Errorf("bars not chronologically ordered at index %d", i)
		}
	}
	if bars[2].Close != 12.5 {
		t.Errorf("bars[2].Close = %v, want 12.5", bars[2].Close)
	}
	if bars[0].Volume != 1000 {
		t.Errorf("bars[0].Volume = %d, want 1000", bars[0].Volume)
	}
}

func TestCandlesNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	_, err := c.Candles(context.Background(), "BADSYM", time.Now().Add(-time.Hour), time.Now())
	if !domain.IsFetchError(err) {
		t.Errorf("want FetchError on no_data, got %v", err)
	}
}

func TestCandlesMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Column lengths disagree.
		w.Write([]byte(`{"o":[1],"h":[1,2],"l":[1],"c":[1],"t":[1717200000,1717286400],"s":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	_, err := c.Candles(context.Background(), "AAPL", time.Now().Add(-time.Hour), time.Now())
	if !domain.IsFetchError(err) {
		t.Errorf("want FetchError on malformed response, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Apple Inc","finnhubIndustry":"Technology"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	p, err := c.Profile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if p.Name != "Apple Inc" || p.Sector != "Technology" {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestCompanyNewsFiltersIncomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"datetime":1717200000,"headline":"Apple ships widget","source":"wire","url":"https://example.com/a"},
			{"datetime":1717200001,"headline":"","source":"wire","url":"https://example.com/b"},
			{"datetime":1717200002,"headline":"No link","source":"wire","url":""}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	items, err := c.CompanyNews(context.Background(), "AAPL", time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("CompanyNews returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 (incomplete articles dropped)", len(items))
	}
	if items[0].Headline != "Apple ships widget" {
		t.Errorf("unexpected headline %q", items[0].Headline)
	}
}

func TestCompanyNewsEmptyIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key")
	items, err := c.CompanyNews(context.Background(), "AAPL", time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("empty news list should not be an error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}
