package alert

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfolio/folio/internal/core"
)

// PriceSource supplies the latest close for a ticker.
type PriceSource interface {
	LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// Evaluation is the outcome of checking one alert against its live price.
// Err is set (and Price/Triggered meaningless) when the price fetch failed;
// that failure is isolated to this alert.
type Evaluation struct {
	Index     int
	Alert     core.Alert
	Price     decimal.Decimal
	Triggered bool
	Err       error
}

// EvaluateAll re-syncs the alert sequence and checks every alert against
// its latest price. A fetch failure for one ticker degrades that alert's
// result only; the batch never aborts. The trigger comparison is
// inclusive: above fires at price >= threshold, below at price <= threshold.
func (s *Store) EvaluateAll(ctx context.Context, prices PriceSource) ([]Evaluation, error) {
	alerts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Evaluation, 0, len(alerts))
	for i, a := range alerts {
		ev := Evaluation{Index: i, Alert: a}

		price, err := prices.LatestClose(ctx, a.Ticker)
		if err != nil {
			ev.Err = core.WrapError(core.ErrPriceUnavailable, err)
			s.logger.Warn("could not check alert",
				zap.String("alert", a.String()),
				zap.Error(err),
			)
			results = append(results, ev)
			continue
		}

		ev.Price = price
		ev.Triggered = triggered(a, price)
		if ev.Triggered {
			s.logger.Info("alert triggered",
				zap.String("alert", a.String()),
				zap.String("price", price.String()),
			)
		}
		results = append(results, ev)
	}

	return results, nil
}

func triggered(a core.Alert, price decimal.Decimal) bool {
	switch a.Direction {
	case core.DirectionAbove:
		return price.GreaterThanOrEqual(a.Threshold)
	case core.DirectionBelow:
		return price.LessThanOrEqual(a.Threshold)
	default:
		return false
	}
}
