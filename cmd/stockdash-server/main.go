package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/joho/godotenv"

	"stockdash/internal/config"
	"stockdash/internal/controller"
	"stockdash/internal/finnhub"
	"stockdash/internal/httpapi"
	"stockdash/internal/news"
	"stockdash/internal/quote"
	"stockdash/internal/session"
	"stockdash/internal/util"
)

func main() {
	// Optional .env with API keys; absence is fine.
	_ = godotenv.Load()

	cfgPath := "config/stockdash.yaml"
	if p := os.Getenv("STOCKDASH_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	sess, err := session.New(cfg.Session.Tickers, cfg.Finnhub.APIKey,
		cfg.Session.RefreshSeconds, cfg.Session.Period, cfg.Session.Theme)
	if err != nil {
		log.Fatalf("invalid ticker list in config: %v", err)
	}

	limiter := util.NewRateLimiter(cfg.Finnhub.RateLimitPerMin)

	// Quote provider.
	var provider quote.Provider
	switch cfg.Quotes.Provider {
	case "finnhub":
		provider = quote.NewFinnhubProvider(finnhub.NewClient(cfg.Finnhub.BaseURL, cfg.Finnhub.APIKey))
	case "alpaca":
		provider = quote.NewAlpacaProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret,
			cfg.Alpaca.BaseURL, cfg.Alpaca.DataURL)
	default:
		log.Fatalf("unknown quote provider %q", cfg.Quotes.Provider)
	}

	// Keyed news source, built per cycle for the session's current key.
	newsFactory := func(apiKey string) controller.NewsFetcher {
		return news.NewFinnhubSource(finnhub.NewClient(cfg.Finnhub.BaseURL, apiKey), limiter)
	}

	// Keyless fallback: Alpaca news when credentials exist, Google RSS
	// otherwise.
	var fallback controller.NewsFetcher
	if cfg.Alpaca.APIKey != "" {
		mdOpts := marketdata.ClientOpts{APIKey: cfg.Alpaca.APIKey, APISecret: cfg.Alpaca.APISecret}
		if cfg.Alpaca.DataURL != "" {
			mdOpts.BaseURL = cfg.Alpaca.DataURL
		}
		fallback = news.NewAlpacaSource(marketdata.NewClient(mdOpts))
	} else {
		fallback = news.NewGoogleRSSSource("", limiter)
	}

	ctrl := controller.New(sess, provider, newsFactory, fallback, nil, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("controller stopped", "error", err)
		}
	}()

	api := httpapi.NewDashboardServer(ctrl, cfg.Assets.VideoDir, cfg.Assets.StaticDir, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: api.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("stockdash-server listening",
		"addr", srv.Addr,
		"provider", provider.Name(),
		"tickers", sess.Tickers,
		"refresh", sess.RefreshInterval)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
