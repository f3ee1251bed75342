// Command stockdash-chart fetches one ticker and renders its themed chart
// to a PNG file, without running the server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stockdash/internal/chart"
	"stockdash/internal/config"
	"stockdash/internal/finnhub"
	"stockdash/internal/quote"
	"stockdash/internal/session"
)

func main() {
	cfgPath := flag.String("config", "config/stockdash.yaml", "path to config file")
	symbol := flag.String("symbol", "AAPL", "ticker symbol")
	period := flag.String("period", "6mo", "history period (1mo, 3mo, 6mo, 1y, 2y, 5y, max)")
	theme := flag.String("theme", "cyberpunk", "chart theme (cyberpunk, dark, light)")
	out := flag.String("o", "", "output file (default SYMBOL.png)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var provider quote.Provider
	switch cfg.Quotes.Provider {
	case "finnhub":
		provider = quote.NewFinnhubProvider(finnhub.NewClient(cfg.Finnhub.BaseURL, cfg.Finnhub.APIKey))
	default:
		provider = quote.NewAlpacaProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret,
			cfg.Alpaca.BaseURL, cfg.Alpaca.DataURL)
	}

	sym := strings.ToUpper(*symbol)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := provider.Fetch(ctx, sym, session.PeriodDays(*period))
	if err != nil {
		log.Fatalf("fetching %s: %v", sym, err)
	}

	img, err := chart.NewRenderer(*theme).Render(sym, snap.History)
	if err != nil {
		log.Fatalf("rendering %s: %v", sym, err)
	}

	path := *out
	if path == "" {
		path = sym + ".png"
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		log.Fatalf("writing %s: %v", path, err)
	}

	log.Printf("wrote %s (%d bars, %s)", path, len(snap.History), snap.Profile.Name)
}
