// Package ledger holds the authoritative in-memory record of cash and
// holdings for one session. All money math is decimal; cash and shares
// always move together or not at all. The ledger does no internal locking:
// one logical session at a time, callers serialize externally.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/core"
)

// PriceSource supplies the latest close for a ticker.
type PriceSource interface {
	LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Holding is a ticker plus the number of shares currently owned.
type Holding struct {
	Ticker string
	Shares int64
}

// Trade reports the result of a completed buy or sell.
type Trade struct {
	Side        Side
	Ticker      string
	Shares      int64
	UnitPrice   decimal.Decimal
	Gross       decimal.Decimal // shares x unit price
	SharesAfter int64           // shares of Ticker held after the trade
	CashAfter   decimal.Decimal
}

// Ledger tracks holdings and cash for a single session.
type Ledger struct {
	cash     decimal.Decimal
	holdings map[string]int64
	logger   *zap.Logger
}

// New creates a ledger with the given starting cash. logger may be nil.
func New(startingCash decimal.Decimal, logger *zap.Logger) (*Ledger, error) {
	if startingCash.IsNegative() {
		return nil, fmt.Errorf("starting cash cannot be negative: %s", startingCash)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		cash:     startingCash,
		holdings: make(map[string]int64),
		logger:   logger,
	}, nil
}

// Seed installs an initial holding without touching cash. Used to load a
// configured starting portfolio before the session begins.
func (l *Ledger) Seed(ticker string, shares int64) error {
	if shares <= 0 {
		return core.ErrInvalidQuantity
	}
	l.holdings[normalize(ticker)] += shares
	return nil
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() decimal.Decimal {
	return l.cash
}

// Shares returns the held share count for ticker, zero when not held.
func (l *Ledger) Shares(ticker string) int64 {
	return l.holdings[normalize(ticker)]
}

// Holdings returns all holdings sorted by ticker.
func (l *Ledger) Holdings() []Holding {
	out := make([]Holding, 0, len(l.holdings))
	for ticker, shares := range l.holdings {
		out = append(out, Holding{Ticker: ticker, Shares: shares})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// Buy purchases shares at unitPrice, rejecting the order before any
// mutation when the quantity or price is invalid or cash cannot cover the
// cost.
func (l *Ledger) Buy(ticker string, shares int64, unitPrice decimal.Decimal) (*Trade, error) {
	if shares <= 0 {
		return nil, core.ErrInvalidQuantity
	}
	if !unitPrice.IsPositive() {
		return nil, core.ErrInvalidPrice
	}
	ticker = normalize(ticker)

	cost := unitPrice.Mul(decimal.NewFromInt(shares))
	if cost.GreaterThan(l.cash) {
		return nil, core.WrapError(core.ErrInsufficientFunds,
			fmt.Errorf("needed %s, available %s", cost, l.cash))
	}

	l.holdings[ticker] += shares
	l.cash = l.cash.Sub(cost)

	l.logger.Info("bought shares",
		zap.String("ticker", ticker),
		zap.Int64("shares", shares),
		zap.String("unit_price", unitPrice.String()),
		zap.String("cash_after", l.cash.String()),
	)

	return &Trade{
		Side:        SideBuy,
		Ticker:      ticker,
		Shares:      shares,
		UnitPrice:   unitPrice,
		Gross:       cost,
		SharesAfter: l.holdings[ticker],
		CashAfter:   l.cash,
	}, nil
}

// Sell disposes of shares at unitPrice. Selling every held share removes
// the ticker from the portfolio; selling more than held is rejected
// outright, never filled partially.
func (l *Ledger) Sell(ticker string, shares int64, unitPrice decimal.Decimal) (*Trade, error) {
	if shares <= 0 {
		return nil, core.ErrInvalidQuantity
	}
	if !unitPrice.IsPositive() {
		return nil, core.ErrInvalidPrice
	}
	ticker = normalize(ticker)

	held, ok := l.holdings[ticker]
	if !ok {
		return nil, core.ErrTickerNotHeld
	}
	if shares > held {
		return nil, core.WrapError(core.ErrInsufficientShares,
			fmt.Errorf("own %d, tried to sell %d", held, shares))
	}

	revenue := unitPrice.Mul(decimal.NewFromInt(shares))
	remaining := held - shares
	if remaining == 0 {
		delete(l.holdings, ticker)
	} else {
		l.holdings[ticker] = remaining
	}
	l.cash = l.cash.Add(revenue)

	l.logger.Info("sold shares",
		zap.String("ticker", ticker),
		zap.Int64("shares", shares),
		zap.String("unit_price", unitPrice.String()),
		zap.Int64("remaining", remaining),
		zap.String("cash_after", l.cash.String()),
	)

	return &Trade{
		Side:        SideSell,
		Ticker:      ticker,
		Shares:      shares,
		UnitPrice:   unitPrice,
		Gross:       revenue,
		SharesAfter: remaining,
		CashAfter:   l.cash,
	}, nil
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
