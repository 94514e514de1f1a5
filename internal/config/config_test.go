package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
ledger:
  portfolio_id: 7
  starting_cash: "25000.50"
  holdings:
    AAPL: 10

alerts:
  file: "data/alerts.json"
  backend: localfs

marketdata:
  provider: alphavantage
  api_key: "demo"
  history_days: 90

watch:
  interval: 5m
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Ledger.PortfolioID != 7 {
		t.Errorf("expected portfolio_id 7, got %d", cfg.Ledger.PortfolioID)
	}
	if cfg.Ledger.StartingCash != "25000.50" {
		t.Errorf("expected starting_cash 25000.50, got %s", cfg.Ledger.StartingCash)
	}
	if cfg.Ledger.Holdings["AAPL"] != 10 {
		t.Errorf("expected 10 shares of AAPL, got %d", cfg.Ledger.Holdings["AAPL"])
	}
	if cfg.MarketData.HistoryDays != 90 {
		t.Errorf("expected history_days 90, got %d", cfg.MarketData.HistoryDays)
	}
	if cfg.Watch.Interval != 5*time.Minute {
		t.Errorf("expected interval 5m, got %s", cfg.Watch.Interval)
	}

	// Defaults survive partial files
	if cfg.Watch.MetricsAddr != ":9464" {
		t.Errorf("expected default metrics addr, got %s", cfg.Watch.MetricsAddr)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("FOLIO_TEST_API_KEY", "secret-key")

	content := []byte(`
marketdata:
  api_key: "${FOLIO_TEST_API_KEY}"
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.MarketData.APIKey != "secret-key" {
		t.Errorf("expected env-expanded api key, got %q", cfg.MarketData.APIKey)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Ledger.StartingCash != "10000" {
		t.Errorf("expected default starting_cash 10000, got %s", cfg.Ledger.StartingCash)
	}
	if cfg.Ledger.PortfolioID != 1 {
		t.Errorf("expected default portfolio_id 1, got %d", cfg.Ledger.PortfolioID)
	}
	if cfg.Alerts.File != "data/alerts.json" {
		t.Errorf("expected default alerts file, got %s", cfg.Alerts.File)
	}
	if cfg.MarketData.HistoryDays != 365 {
		t.Errorf("expected default history_days 365, got %d", cfg.MarketData.HistoryDays)
	}
	if cfg.Watch.Interval != 15*time.Minute {
		t.Errorf("expected default watch interval 15m, got %s", cfg.Watch.Interval)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "non-numeric starting cash",
			mutate:  func(c *Config) { c.Ledger.StartingCash = "lots" },
			wantErr: true,
		},
		{
			name:    "negative starting cash",
			mutate:  func(c *Config) { c.Ledger.StartingCash = "-1" },
			wantErr: true,
		},
		{
			name:    "zero seed holding",
			mutate:  func(c *Config) { c.Ledger.Holdings = map[string]int64{"AAPL": 0} },
			wantErr: true,
		},
		{
			name:    "missing alerts file",
			mutate:  func(c *Config) { c.Alerts.File = "" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Alerts.Backend = "gcs" },
			wantErr: true,
		},
		{
			name:    "s3 backend without bucket",
			mutate:  func(c *Config) { c.Alerts.Backend = "s3" },
			wantErr: true,
		},
		{
			name: "s3 backend with bucket",
			mutate: func(c *Config) {
				c.Alerts.Backend = "s3"
				c.Alerts.S3.Bucket = "folio-alerts"
			},
			wantErr: false,
		},
		{
			name:    "zero history days",
			mutate:  func(c *Config) { c.MarketData.HistoryDays = 0 },
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.MarketData.Provider = "yahoo" },
			wantErr: true,
		},
		{
			name:    "zero watch interval",
			mutate:  func(c *Config) { c.Watch.Interval = 0 },
			wantErr: true,
		},
		{
			name: "enabled webhook without url",
			mutate: func(c *Config) {
				c.Notifiers = map[string]NotifierConfig{"webhook": {Enabled: true}}
			},
			wantErr: true,
		},
		{
			name: "disabled webhook without url",
			mutate: func(c *Config) {
				c.Notifiers = map[string]NotifierConfig{"webhook": {Enabled: false}}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_StartingCash(t *testing.T) {
	cfg := Defaults()
	if cfg.StartingCash().String() != "10000" {
		t.Errorf("expected 10000, got %s", cfg.StartingCash().String())
	}
}
