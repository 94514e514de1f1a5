package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/config"
	"github.com/quantfolio/folio/internal/logger"
	"github.com/quantfolio/folio/internal/session"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio ledger and price alert engine",
	Long: `folio tracks a cash-and-shares portfolio, evaluates price alerts
against live quotes, and interprets technical strategies into outlooks.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// setup loads configuration and builds a session for a command invocation.
func setup() (*session.Session, *zap.Logger, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		if key := os.Getenv("ALPHAVANTAGE_API_KEY"); key != "" {
			cfg.MarketData.APIKey = key
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	log := logger.Must(debug || cfg.Logging.Development, level)

	sess, err := session.New(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}
	return sess, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
