package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quantfolio/folio/internal/core"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Ledger     LedgerConfig              `mapstructure:"ledger"`
	Alerts     AlertsConfig              `mapstructure:"alerts"`
	MarketData MarketDataConfig          `mapstructure:"marketdata"`
	Strategies map[string]StrategyConfig `mapstructure:"strategies"`
	Notifiers  map[string]NotifierConfig `mapstructure:"notifiers"`
	Watch      WatchConfig               `mapstructure:"watch"`
	Logging    LoggingConfig             `mapstructure:"logging"`
}

type LedgerConfig struct {
	PortfolioID  int              `mapstructure:"portfolio_id"`
	StartingCash string           `mapstructure:"starting_cash"`
	Holdings     map[string]int64 `mapstructure:"holdings"`
}

type AlertsConfig struct {
	File    string   `mapstructure:"file"`
	Backend string   `mapstructure:"backend"` // "localfs" or "s3"
	S3      S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type MarketDataConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	HistoryDays int           `mapstructure:"history_days"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type StrategyConfig struct {
	Enabled bool           `mapstructure:"enabled"`
	Params  map[string]any `mapstructure:"params"`
}

type NotifierConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

type WatchConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Ledger: LedgerConfig{
			PortfolioID:  1,
			StartingCash: "10000",
		},
		Alerts: AlertsConfig{
			File:    "data/alerts.json",
			Backend: "localfs",
		},
		MarketData: MarketDataConfig{
			Provider:    "alphavantage",
			HistoryDays: 365,
			Timeout:     30 * time.Second,
		},
		Watch: WatchConfig{
			Interval:    15 * time.Minute,
			MetricsAddr: ":9464",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	cash, err := decimal.NewFromString(c.Ledger.StartingCash)
	if err != nil {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("starting_cash must be a decimal number, got %q", c.Ledger.StartingCash))
	}
	if cash.IsNegative() {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("starting_cash cannot be negative, got %s", c.Ledger.StartingCash))
	}
	for ticker, shares := range c.Ledger.Holdings {
		if shares <= 0 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("holdings[%s] must be positive, got %d", ticker, shares))
		}
	}

	if c.Alerts.File == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("alerts file path is required"))
	}
	switch c.Alerts.Backend {
	case "localfs":
	case "s3":
		if c.Alerts.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when alerts backend is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown alerts backend %q", c.Alerts.Backend))
	}

	if c.MarketData.HistoryDays <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("history_days must be positive, got %d", c.MarketData.HistoryDays))
	}
	if c.MarketData.Provider != "alphavantage" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown marketdata provider %q", c.MarketData.Provider))
	}

	if c.Watch.Interval <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("watch interval must be positive, got %s", c.Watch.Interval))
	}

	for name, n := range c.Notifiers {
		if !n.Enabled {
			continue
		}
		if name == "webhook" && n.URL == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("webhook url required when webhook notifier is enabled"))
		}
	}

	return nil
}

// StartingCash parses the configured starting cash. Call Validate first.
func (c *Config) StartingCash() decimal.Decimal {
	cash, err := decimal.NewFromString(c.Ledger.StartingCash)
	if err != nil {
		return decimal.Zero
	}
	return cash
}
