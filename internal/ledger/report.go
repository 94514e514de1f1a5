package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/core"
)

var oneHundred = decimal.NewFromInt(100)

// Row is one holding's line in a value report. A failed price lookup leaves
// Price nil and Err set; the shares are still reported.
type Row struct {
	Ticker        string
	Shares        int64
	Price         *decimal.Decimal
	Value         decimal.Decimal
	AllocationPct decimal.Decimal // of priced holdings, rounded to 2 decimals
	Err           error
}

// Report values every holding at its latest close.
type Report struct {
	Rows          []Row
	HoldingsValue decimal.Decimal // sum of priced rows only
	Cash          decimal.Decimal
	TotalValue    decimal.Decimal // holdings value + cash
}

// ValueReport prices each holding via prices. One unavailable ticker
// degrades its own row only; the rest of the report still comes back.
func (l *Ledger) ValueReport(ctx context.Context, prices PriceSource) *Report {
	report := &Report{Cash: l.cash}

	for _, h := range l.Holdings() {
		row := Row{Ticker: h.Ticker, Shares: h.Shares}

		price, err := prices.LatestClose(ctx, h.Ticker)
		if err != nil {
			row.Err = core.WrapError(core.ErrPriceUnavailable, err)
			l.logger.Warn("no price for holding",
				zap.String("ticker", h.Ticker),
				zap.Error(err),
			)
		} else {
			row.Price = &price
			row.Value = price.Mul(decimal.NewFromInt(h.Shares))
			report.HoldingsValue = report.HoldingsValue.Add(row.Value)
		}

		report.Rows = append(report.Rows, row)
	}

	// Allocation uses only the priced rows' total as denominator.
	for i := range report.Rows {
		row := &report.Rows[i]
		if row.Err != nil || report.HoldingsValue.IsZero() {
			row.AllocationPct = decimal.Zero
			continue
		}
		row.AllocationPct = row.Value.Div(report.HoldingsValue).Mul(oneHundred).Round(2)
	}

	report.TotalValue = report.HoldingsValue.Add(report.Cash)
	return report
}
