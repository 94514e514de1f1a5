package session

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/alert"
	"github.com/quantfolio/folio/internal/config"
	"github.com/quantfolio/folio/internal/core"
	"github.com/quantfolio/folio/internal/ledger"
	"github.com/quantfolio/folio/internal/marketdata"
	"github.com/quantfolio/folio/internal/marketdata/alphavantage"
	"github.com/quantfolio/folio/internal/metrics"
	"github.com/quantfolio/folio/internal/notify"
	"github.com/quantfolio/folio/internal/notify/webhook"
	"github.com/quantfolio/folio/internal/outlook"
	"github.com/quantfolio/folio/internal/storage/snapshot"
	"github.com/quantfolio/folio/internal/strategy"
	"github.com/quantfolio/folio/internal/strategy/bollinger"
	"github.com/quantfolio/folio/internal/strategy/movingavg"
	"github.com/quantfolio/folio/internal/strategy/rsi"
)

// Session wires the ledger, alert store, price cache, strategy engine and
// notifiers behind the operations the CLI exposes. A Session is owned by a
// single command invocation; its methods are not safe for concurrent use.
type Session struct {
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *metrics.Registry
	ledger     *ledger.Ledger
	alerts     *alert.Store
	cache      *marketdata.Cache
	strategies *strategy.Engine
	notifiers  *notify.Registry
}

// StrategyResult is the outcome of running one strategy over one ticker.
type StrategyResult struct {
	Strategy string
	Ticker   string
	Series   core.IndicatorSeries
	Outlook  core.Outlook
}

// New builds a Session from configuration.
func New(cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	led, err := ledger.New(cfg.StartingCash(), logger)
	if err != nil {
		return nil, fmt.Errorf("creating ledger: %w", err)
	}
	for ticker, shares := range cfg.Ledger.Holdings {
		if err := led.Seed(ticker, shares); err != nil {
			return nil, fmt.Errorf("seeding holding %s: %w", ticker, err)
		}
	}

	store, err := newAlertStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := alphavantage.New(alphavantage.Config{
		APIKey:      cfg.MarketData.APIKey,
		BaseURL:     cfg.MarketData.BaseURL,
		HistoryDays: cfg.MarketData.HistoryDays,
		Timeout:     cfg.MarketData.Timeout,
	})
	cache := marketdata.NewCache(provider, logger)

	reg := metrics.NewRegistry()
	cache.SetRecorder(reg)

	engine := strategy.NewEngine(logger)
	registerStrategies(engine, cfg)

	notifiers := notify.NewRegistry()
	if err := registerNotifiers(notifiers, cfg); err != nil {
		return nil, err
	}

	return &Session{
		cfg:        cfg,
		logger:     logger,
		metrics:    reg,
		ledger:     led,
		alerts:     store,
		cache:      cache,
		strategies: engine,
		notifiers:  notifiers,
	}, nil
}

func newAlertStore(cfg *config.Config, logger *zap.Logger) (*alert.Store, error) {
	switch cfg.Alerts.Backend {
	case "s3":
		storage, err := snapshot.NewS3(snapshot.S3Config{
			Bucket:    cfg.Alerts.S3.Bucket,
			Endpoint:  cfg.Alerts.S3.Endpoint,
			Region:    cfg.Alerts.S3.Region,
			AccessKey: cfg.Alerts.S3.AccessKey,
			SecretKey: cfg.Alerts.S3.SecretKey,
			Prefix:    cfg.Alerts.S3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 snapshot storage: %w", err)
		}
		return alert.NewStore(storage, cfg.Alerts.File, logger), nil
	default:
		storage, err := snapshot.NewLocalFS(".")
		if err != nil {
			return nil, fmt.Errorf("creating local snapshot storage: %w", err)
		}
		return alert.NewStore(storage, cfg.Alerts.File, logger), nil
	}
}

func registerStrategies(engine *strategy.Engine, cfg *config.Config) {
	fast := intParam(cfg, "moving_avg", "fast_period", 20)
	slow := intParam(cfg, "moving_avg", "slow_period", 50)
	engine.Register(movingavg.New(fast, slow))

	engine.Register(rsi.New(intParam(cfg, "rsi", "period", 14)))

	engine.Register(bollinger.New(
		intParam(cfg, "bollinger", "period", 20),
		floatParam(cfg, "bollinger", "stddevs", 2.0),
	))
}

func registerNotifiers(reg *notify.Registry, cfg *config.Config) error {
	for name, nc := range cfg.Notifiers {
		if !nc.Enabled {
			continue
		}
		switch name {
		case "webhook":
			hook, err := webhook.New(nc.URL, nc.Headers)
			if err != nil {
				return fmt.Errorf("creating webhook notifier: %w", err)
			}
			if err := reg.Register(hook); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown notifier %q", name)
		}
	}
	return nil
}

func intParam(cfg *config.Config, strategyName, key string, fallback int) int {
	sc, ok := cfg.Strategies[strategyName]
	if !ok {
		return fallback
	}
	switch v := sc.Params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func floatParam(cfg *config.Config, strategyName, key string, fallback float64) float64 {
	sc, ok := cfg.Strategies[strategyName]
	if !ok {
		return fallback
	}
	switch v := sc.Params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// Config returns the session's configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Ledger returns the portfolio ledger.
func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

// Alerts returns the alert store.
func (s *Session) Alerts() *alert.Store { return s.alerts }

// Strategies returns the strategy engine.
func (s *Session) Strategies() *strategy.Engine { return s.strategies }

// Metrics returns the metrics registry.
func (s *Session) Metrics() *metrics.Registry { return s.metrics }

// PortfolioID returns the configured portfolio identifier.
func (s *Session) PortfolioID() int { return s.cfg.Ledger.PortfolioID }

// PortfolioReport values the portfolio at fresh prices.
func (s *Session) PortfolioReport(ctx context.Context) *ledger.Report {
	s.cache.BeginCycle()
	return s.ledger.ValueReport(ctx, s.cache)
}

// Buy purchases shares at the latest close.
func (s *Session) Buy(ctx context.Context, ticker string, shares int64) (*ledger.Trade, error) {
	s.cache.BeginCycle()
	price, err := s.cache.LatestClose(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.BuyAt(ticker, shares, price)
}

// BuyAt purchases shares at an explicit unit price.
func (s *Session) BuyAt(ticker string, shares int64, price decimal.Decimal) (*ledger.Trade, error) {
	trade, err := s.ledger.Buy(ticker, shares, price)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTrade(string(trade.Side))
	return trade, nil
}

// Sell disposes of shares at the latest close.
func (s *Session) Sell(ctx context.Context, ticker string, shares int64) (*ledger.Trade, error) {
	s.cache.BeginCycle()
	price, err := s.cache.LatestClose(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.SellAt(ticker, shares, price)
}

// SellAt disposes of shares at an explicit unit price.
func (s *Session) SellAt(ticker string, shares int64, price decimal.Decimal) (*ledger.Trade, error) {
	trade, err := s.ledger.Sell(ticker, shares, price)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTrade(string(trade.Side))
	return trade, nil
}

// RunStrategy computes a strategy over the ticker's history and interprets
// the latest signal as an outlook.
func (s *Session) RunStrategy(ctx context.Context, name, ticker string) (*StrategyResult, error) {
	s.cache.BeginCycle()
	bars, err := s.cache.History(ctx, ticker)
	if err != nil {
		return nil, err
	}
	series, err := s.strategies.Run(name, bars)
	if err != nil {
		return nil, err
	}
	return &StrategyResult{
		Strategy: name,
		Ticker:   ticker,
		Series:   series,
		Outlook:  outlook.ForSeries(name, series),
	}, nil
}

// AddAlert persists a new alert for the session's portfolio.
func (s *Session) AddAlert(ctx context.Context, ticker string, threshold decimal.Decimal, direction core.Direction) (core.Alert, error) {
	return s.alerts.Add(ctx, s.cfg.Ledger.PortfolioID, ticker, threshold, direction)
}

// RemoveAlert deletes the alert at the given position.
func (s *Session) RemoveAlert(ctx context.Context, index int) (core.Alert, error) {
	return s.alerts.Remove(ctx, index)
}

// ListAlerts returns the persisted alerts.
func (s *Session) ListAlerts(ctx context.Context) ([]core.Alert, error) {
	return s.alerts.List(ctx)
}

// CheckAlerts evaluates every alert at fresh prices. Per-alert failures are
// reported in the evaluations, not as an error.
func (s *Session) CheckAlerts(ctx context.Context) ([]alert.Evaluation, error) {
	s.cache.BeginCycle()
	evals, err := s.alerts.EvaluateAll(ctx, s.cache)
	if err != nil {
		return nil, err
	}
	s.metrics.SetAlertsActive(len(evals))
	for _, ev := range evals {
		s.metrics.RecordEvaluation(ev.Triggered, ev.Err != nil)
	}
	return evals, nil
}

// Watch evaluates alerts on a fixed interval until the context is cancelled.
// Triggered alerts are fanned out to the registered notifiers.
func (s *Session) Watch(ctx context.Context) error {
	s.logger.Info("watch starting",
		zap.Duration("interval", s.cfg.Watch.Interval),
		zap.Int("notifiers", s.notifiers.Len()),
	)

	s.watchCycle(ctx)

	ticker := time.NewTicker(s.cfg.Watch.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watch shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.watchCycle(ctx)
		}
	}
}

func (s *Session) watchCycle(ctx context.Context) {
	start := time.Now()

	evals, err := s.CheckAlerts(ctx)
	if err != nil {
		s.logger.Error("alert evaluation failed", zap.Error(err))
		return
	}

	for _, ev := range evals {
		if ev.Err != nil {
			s.logger.Warn("alert check failed",
				zap.Int("index", ev.Index),
				zap.String("ticker", ev.Alert.Ticker),
				zap.Error(ev.Err),
			)
			continue
		}
		if !ev.Triggered {
			continue
		}

		s.logger.Info("alert triggered",
			zap.Int("index", ev.Index),
			zap.String("ticker", ev.Alert.Ticker),
			zap.String("price", ev.Price.String()),
			zap.String("threshold", ev.Alert.Threshold.String()),
		)

		msg := notify.Message{
			PortfolioID: ev.Alert.PortfolioID,
			Ticker:      ev.Alert.Ticker,
			Direction:   ev.Alert.Direction,
			Threshold:   ev.Alert.Threshold,
			Price:       ev.Price,
			At:          time.Now().UTC(),
		}
		for name, sendErr := range s.notifiers.NotifyAll(msg) {
			s.logger.Error("notification failed",
				zap.String("notifier", name),
				zap.Error(sendErr),
			)
		}
	}

	s.metrics.RecordWatchCycle(time.Since(start).Seconds())
	s.logger.Debug("watch cycle complete",
		zap.Int("alerts", len(evals)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
