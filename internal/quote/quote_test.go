package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockdash/internal/domain"
	"stockdash/internal/finnhub"
)

func TestSortBars(t *testing.T) {
	bars := []domain.Bar{
		{Timestamp: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), Close: 3},
		{Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Close: 1},
		{Timestamp: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Close: 2},
	}
	sortBars(bars)
	for i, want := range []float64{1, 2, 3} {
		if bars[i].Close != want {
			t.Errorf("bars[%d].Close = %v, want %v", i, bars[i].Close, want)
		}
	}
}

func TestFinnhubProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/candle":
			w.Write([]byte(`{
				"o":[10,11],"h":[11,12],"l":[9,10],"c":[10.5,11.5],
				"v":[100,200],"t":[1717200000,1717286400],"s":"ok"
			}`))
		case "/quote":
			w.Write([]byte(`{"c":12.25,"t":1717290000}`))
		case "/stock/profile2":
			w.Write([]byte(`{"name":"Apple Inc","finnhubIndustry":"Technology"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewFinnhubProvider(finnhub.NewClient(srv.URL, "key"))
	snap, err := p.Fetch(context.Background(), "AAPL", 30)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(snap.History) != 2 {
		t.Fatalf("got %d bars, want 2", len(snap.History))
	}
	if !snap.History[1].Timestamp.After(snap.History[0].Timestamp) {
		t.Error("history not chronologically ordered")
	}
	if snap.Price != 12.25 {
		t.Errorf("Price = %v, want 12.25 (from quote endpoint)", snap.Price)
	}
	if snap.Profile.Name != "Apple Inc" || snap.Profile.Sector != "Technology" {
		t.Errorf("unexpected profile %+v", snap.Profile)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestFinnhubProviderUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	}))
	defer srv.Close()

	p := NewFinnhubProvider(finnhub.NewClient(srv.URL, "key"))
	_, err := p.Fetch(context.Background(), "BADSYM", 30)
	if !domain.IsFetchError(err) {
		t.Errorf("want FetchError for unknown symbol, got %v", err)
	}
}

func TestFinnhubProviderDegradedEndpoints(t *testing.T) {
	// Candles succeed; quote and profile fail. The snapshot should fall
	// back to the last close and the bare symbol.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/stock/candle" {
			w.Write([]byte(`{"o":[10,11],"h":[11,12],"l":[9,10],"c":[10.5,11.5],"v":[1,2],"t":[1717200000,1717286400],"s":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewFinnhubProvider(finnhub.NewClient(srv.URL, "key"))
	snap, err := p.Fetch(context.Background(), "AAPL", 30)
	if err != nil {
		t.Fatalf("Fetch should degrade, got error: %v", err)
	}
	if snap.Price != 11.5 {
		t.Errorf("Price = %v, want last close 11.5", snap.Price)
	}
	if snap.Profile.Name != "AAPL" {
		t.Errorf("Profile.Name = %q, want bare symbol", snap.Profile.Name)
	}
}
