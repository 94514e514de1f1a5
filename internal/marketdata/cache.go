package marketdata

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/core"
)

// Cache wraps a Provider and memoizes each ticker's series for the duration
// of one refresh cycle. A cycle corresponds to one menu action or one watch
// tick; BeginCycle drops the memo so the next access refetches.
type Cache struct {
	provider Provider
	logger   *zap.Logger
	recorder Recorder

	mu     sync.Mutex
	cycle  string
	series map[string][]core.Bar
}

// NewCache creates a cache around provider. logger may be nil.
func NewCache(provider Provider, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		provider: provider,
		logger:   logger,
		cycle:    uuid.NewString(),
		series:   make(map[string][]core.Bar),
	}
}

// SetRecorder attaches a metrics recorder.
func (c *Cache) SetRecorder(r Recorder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recorder = r
}

// BeginCycle starts a fresh refresh cycle and returns its id. All memoized
// series are discarded.
func (c *Cache) BeginCycle() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cycle = uuid.NewString()
	c.series = make(map[string][]core.Bar)
	c.logger.Debug("market data refresh cycle started", zap.String("cycle", c.cycle))
	return c.cycle
}

// History returns the daily series for ticker, newest first. Within one
// cycle repeated calls for the same ticker hit the memo; fetch failures are
// not memoized and will retry on the next call.
func (c *Cache) History(ctx context.Context, ticker string) ([]core.Bar, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	c.mu.Lock()
	bars, ok := c.series[ticker]
	cycle := c.cycle
	recorder := c.recorder
	c.mu.Unlock()

	if recorder != nil {
		recorder.RecordCacheLookup(ok)
	}
	if ok {
		return bars, nil
	}

	bars, err := c.provider.FetchDaily(ctx, ticker)
	if err != nil {
		if recorder != nil {
			recorder.RecordPriceFetch(c.provider.Name(), "error")
		}
		c.logger.Warn("price fetch failed",
			zap.String("ticker", ticker),
			zap.String("cycle", cycle),
			zap.Error(err),
		)
		if errors.Is(err, core.ErrDataUnavailable) {
			return nil, err
		}
		return nil, core.WrapError(core.ErrDataUnavailable, err)
	}
	if len(bars) == 0 {
		if recorder != nil {
			recorder.RecordPriceFetch(c.provider.Name(), "empty")
		}
		return nil, core.ErrDataUnavailable
	}

	if recorder != nil {
		recorder.RecordPriceFetch(c.provider.Name(), "ok")
	}

	c.mu.Lock()
	// Keep the first fetch if another caller raced us within the cycle.
	if cached, dup := c.series[ticker]; dup {
		bars = cached
	} else {
		c.series[ticker] = bars
	}
	c.mu.Unlock()

	return bars, nil
}

// LatestClose returns the close of the newest bar for ticker.
func (c *Cache) LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error) {
	bars, err := c.History(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return bars[0].Close, nil
}
