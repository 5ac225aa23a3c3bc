// Package config loads runtime settings from environment variables with
// built-in defaults. The scraper carries no config files and no flags at
// this layer; the CLI owns the flags.
package config

import (
	"time"

	"github.com/cristalhq/aconfig"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds the tunables for one run. Every field can be overridden
// with a SCRAPER_-prefixed environment variable.
type Config struct {
	FeedTimeout   time.Duration `default:"30s" env:"FEED_TIMEOUT" usage:"per-request timeout for feed fetches"`
	DetailTimeout time.Duration `default:"20s" env:"DETAIL_TIMEOUT" usage:"per-request timeout for detail-page fetches"`
	FetchDelay    time.Duration `default:"1500ms" env:"FETCH_DELAY" usage:"politeness pause after each detail-page fetch"`
	UserAgent     string        `env:"USER_AGENT" usage:"User-Agent header sent with every request"`
	OutputDir     string        `default:"." env:"OUTPUT_DIR" usage:"directory for output files"`
	LogLevel      string        `default:"INFO" env:"LOG_LEVEL" usage:"minimum log level"`
}

// Load reads the environment on top of the defaults.
func Load() (Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SCRAPER",
		SkipFiles: true,
		SkipFlags: true,
	})
	if err := loader.Load(); err != nil {
		return Config{}, err
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return cfg, nil
}
