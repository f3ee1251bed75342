package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the stockdash service.
type Config struct {
	Server  Server  `yaml:"server"`
	Quotes  Quotes  `yaml:"quotes"`
	Finnhub Finnhub `yaml:"finnhub"`
	Alpaca  Alpaca  `yaml:"alpaca"`
	Session Session `yaml:"session"`
	Assets  Assets  `yaml:"assets"`
	Logging Logging `yaml:"logging"`
}

// Server holds network listener configuration.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Quotes selects the market-data provider for quote snapshots.
// Supported values: "alpaca", "finnhub".
type Quotes struct {
	Provider string `yaml:"provider"`
}

// Finnhub holds credentials and endpoint for the Finnhub API. The key is
// also used for company news regardless of the quote provider.
type Finnhub struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
	DataURL   string `yaml:"data_url"`
}

// Session holds the defaults a new dashboard session starts with. All of
// them can be changed at runtime through the session API.
type Session struct {
	Tickers        string `yaml:"tickers"`         // free text, comma/space separated
	RefreshSeconds int    `yaml:"refresh_seconds"` // 0 disables the timer
	Period         string `yaml:"period"`          // 1mo, 3mo, 6mo, 1y, 2y, 5y, max
	Theme          string `yaml:"theme"`           // cyberpunk, dark, light
}

// Assets holds paths for static presentation assets served as-is.
type Assets struct {
	VideoDir  string `yaml:"video_dir"`
	StaticDir string `yaml:"static_dir"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults fills fields the file and environment left empty.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Quotes.Provider == "" {
		cfg.Quotes.Provider = "alpaca"
	}
	if cfg.Finnhub.BaseURL == "" {
		cfg.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if cfg.Finnhub.RateLimitPerMin == 0 {
		cfg.Finnhub.RateLimitPerMin = 60
	}
	if cfg.Session.Tickers == "" {
		cfg.Session.Tickers = "AAPL, TSLA, NVDA"
	}
	if cfg.Session.RefreshSeconds == 0 {
		cfg.Session.RefreshSeconds = 60
	}
	if cfg.Session.Period == "" {
		cfg.Session.Period = "6mo"
	}
	if cfg.Session.Theme == "" {
		cfg.Session.Theme = "cyberpunk"
	}
	if cfg.Assets.VideoDir == "" {
		cfg.Assets.VideoDir = "videos"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCKDASH_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("STOCKDASH_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}

	if v := os.Getenv("QUOTE_PROVIDER"); v != "" {
		cfg.Quotes.Provider = v
	}

	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" {
		cfg.Finnhub.BaseURL = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars take highest priority; these are the
	// canonical names the SDK itself reads.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
