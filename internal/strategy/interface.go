package strategy

import "github.com/quantfolio/folio/internal/core"

// Strategy computes an indicator series from a price history. Bars arrive
// newest first, as providers return them; the resulting series is
// chronological so its Latest() row reflects the newest bar.
type Strategy interface {
	Name() string
	Description() string
	Compute(bars []core.Bar) (core.IndicatorSeries, error)
}
