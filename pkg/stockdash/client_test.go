package stockdash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"session":{"tickers":["AAPL"],"refreshSeconds":30,"period":"3mo","theme":"cyberpunk","newsKeySet":true},
			"tickers":[{"symbol":"AAPL","state":"rendered","hasChart":true,"news":[]}]
		}`))
	}))
	defer srv.Close()

	d, err := NewClient(srv.URL).GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard returned error: %v", err)
	}
	if len(d.Tickers) != 1 || d.Tickers[0].Symbol != "AAPL" {
		t.Errorf("unexpected dashboard %+v", d)
	}
	if d.Session.RefreshSeconds != 30 {
		t.Errorf("RefreshSeconds = %d", d.Session.RefreshSeconds)
	}
}

func TestGetChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chart/AAPL" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	img, err := NewClient(srv.URL).GetChart(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetChart returned error: %v", err)
	}
	if len(img) != 4 {
		t.Errorf("got %d bytes", len(img))
	}
}

func TestServerErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"refresh already in flight"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Refresh(context.Background())
	if err == nil {
		t.Fatal("want error for 409 response")
	}
}
