package chart

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"stockdash/internal/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testSeries(n int) []domain.Bar {
	bars := make([]domain.Bar, n)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = domain.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Close:     100 + float64(i),
		}
	}
	return bars
}

func TestRenderTooShort(t *testing.T) {
	r := NewRenderer("cyberpunk")

	for _, n := range []int{0, 1} {
		_, err := r.Render("AAPL", testSeries(n))
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Render with %d points: want ErrInsufficientData, got %v", n, err)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	r := NewRenderer("cyberpunk")

	img, err := r.Render("AAPL", testSeries(10))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(img) == 0 {
		t.Fatal("Render returned empty image")
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderTwoPoints(t *testing.T) {
	r := NewRenderer("dark")
	img, err := r.Render("MSFT", testSeries(2))
	if err != nil {
		t.Fatalf("two points should be renderable: %v", err)
	}
	if len(img) == 0 {
		t.Fatal("empty image for two-point series")
	}
}

func TestRenderFlatSeries(t *testing.T) {
	bars := testSeries(5)
	for i := range bars {
		bars[i].Close = 42
	}

	r := NewRenderer("light")
	if _, err := r.Render("FLAT", bars); err != nil {
		t.Fatalf("flat series should render with padded range: %v", err)
	}
}

func TestThemeByNameFallback(t *testing.T) {
	if got := ThemeByName("no-such-theme").Name; got != "cyberpunk" {
		t.Errorf("fallback theme = %q, want cyberpunk", got)
	}
	if got := ThemeByName("dark").Name; got != "dark" {
		t.Errorf("ThemeByName(dark) = %q", got)
	}
}
