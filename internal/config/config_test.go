package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	yamlContent := []byte(`
server:
  host: "127.0.0.1"
  port: 9000
quotes:
  provider: "finnhub"
finnhub:
  api_key: "test-key"
  base_url: "https://finnhub.io/api/v1"
  rate_limit_per_min: 30
alpaca:
  api_key: "alpaca-key"
  api_secret: "alpaca-secret"
  data_url: "https://data.alpaca.markets"
session:
  tickers: "AAPL, MSFT"
  refresh_seconds: 30
  period: "3mo"
  theme: "cyberpunk"
assets:
  video_dir: "videos"
logging:
  level: "debug"
  format: "json"
`)

	tmpFile, err := os.CreateTemp("", "stockdash-config-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	// Clear any environment overrides that might interfere.
	os.Unsetenv("FINNHUB_API_KEY")
	os.Unsetenv("ALPACA_API_KEY")
	os.Unsetenv("ALPACA_API_SECRET")
	os.Unsetenv("APCA_API_KEY_ID")
	os.Unsetenv("APCA_API_SECRET_KEY")
	os.Unsetenv("QUOTE_PROVIDER")
	os.Unsetenv("STOCKDASH_PORT")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9000)
	}
	if cfg.Quotes.Provider != "finnhub" {
		t.Errorf("Quotes.Provider = %q, want %q", cfg.Quotes.Provider, "finnhub")
	}
	if cfg.Finnhub.APIKey != "test-key" {
		t.Errorf("Finnhub.APIKey = %q, want %q", cfg.Finnhub.APIKey, "test-key")
	}
	if cfg.Finnhub.RateLimitPerMin != 30 {
		t.Errorf("Finnhub.RateLimitPerMin = %d, want %d", cfg.Finnhub.RateLimitPerMin, 30)
	}
	if cfg.Alpaca.APIKey != "alpaca-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q", cfg.Alpaca.APIKey, "alpaca-key")
	}
	if cfg.Session.Tickers != "AAPL, MSFT" {
		t.Errorf("Session.Tickers = %q, want %q", cfg.Session.Tickers, "AAPL, MSFT")
	}
	if cfg.Session.RefreshSeconds != 30 {
		t.Errorf("Session.RefreshSeconds = %d, want %d", cfg.Session.RefreshSeconds, 30)
	}
	if cfg.Session.Period != "3mo" {
		t.Errorf("Session.Period = %q, want %q", cfg.Session.Period, "3mo")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "stockdash-config-empty-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.Write([]byte("{}\n")); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	os.Unsetenv("QUOTE_PROVIDER")
	os.Unsetenv("FINNHUB_BASE_URL")
	os.Unsetenv("STOCKDASH_HOST")
	os.Unsetenv("STOCKDASH_PORT")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Quotes.Provider != "alpaca" {
		t.Errorf("Quotes.Provider = %q, want default %q", cfg.Quotes.Provider, "alpaca")
	}
	if cfg.Finnhub.BaseURL != "https://finnhub.io/api/v1" {
		t.Errorf("Finnhub.BaseURL = %q, want default", cfg.Finnhub.BaseURL)
	}
	if cfg.Session.Theme != "cyberpunk" {
		t.Errorf("Session.Theme = %q, want default %q", cfg.Session.Theme, "cyberpunk")
	}
	if cfg.Session.RefreshSeconds != 60 {
		t.Errorf("Session.RefreshSeconds = %d, want default 60", cfg.Session.RefreshSeconds)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	yamlContent := []byte(`
finnhub:
  api_key: "yaml-key"
alpaca:
  api_key: "yaml-alpaca-key"
  api_secret: "yaml-alpaca-secret"
`)

	tmpFile, err := os.CreateTemp("", "stockdash-config-env-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(yamlContent); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	tmpFile.Close()

	os.Setenv("FINNHUB_API_KEY", "env-key")
	os.Setenv("APCA_API_KEY_ID", "env-alpaca-key")
	defer os.Unsetenv("FINNHUB_API_KEY")
	defer os.Unsetenv("APCA_API_KEY_ID")
	os.Unsetenv("ALPACA_API_KEY")
	os.Unsetenv("APCA_API_SECRET_KEY")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Finnhub.APIKey != "env-key" {
		t.Errorf("Finnhub.APIKey = %q, want %q (env override)", cfg.Finnhub.APIKey, "env-key")
	}
	if cfg.Alpaca.APIKey != "env-alpaca-key" {
		t.Errorf("Alpaca.APIKey = %q, want %q (env override)", cfg.Alpaca.APIKey, "env-alpaca-key")
	}
	// api_secret should remain from YAML since no env override was set.
	if cfg.Alpaca.APISecret != "yaml-alpaca-secret" {
		t.Errorf("Alpaca.APISecret = %q, want %q (from YAML)", cfg.Alpaca.APISecret, "yaml-alpaca-secret")
	}
}
