// Package bollinger implements the Bollinger band strategy.
package bollinger

import (
	"fmt"

	"github.com/quantfolio/folio/internal/core"
	"github.com/quantfolio/folio/internal/indicator"
)

// Bollinger fills the Upper/Middle/Lower columns of the series.
type Bollinger struct {
	period  int
	stddevs float64
}

// New creates a Bollinger band strategy.
func New(period int, stddevs float64) *Bollinger {
	return &Bollinger{period: period, stddevs: stddevs}
}

func (b *Bollinger) Name() string {
	return "bollinger"
}

func (b *Bollinger) Description() string {
	return fmt.Sprintf("Bollinger Bands (%d, %.1fσ)", b.period, b.stddevs)
}

func (b *Bollinger) Compute(bars []core.Bar) (core.IndicatorSeries, error) {
	chrono := core.Chronological(bars)
	if len(chrono) < b.period {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need %d bars, have %d", b.period, len(chrono)))
	}

	closes := make([]float64, len(chrono))
	for i, bar := range chrono {
		closes[i] = bar.Close.InexactFloat64()
	}

	bands := indicator.Bollinger(closes, b.period, b.stddevs)

	// First band belongs to the bar at index period-1.
	series := make(core.IndicatorSeries, 0, len(bands))
	for i, band := range bands {
		barIdx := b.period - 1 + i
		series = append(series, core.IndicatorPoint{
			Date:   chrono[barIdx].Date,
			Close:  closes[barIdx],
			Upper:  band.Upper,
			Middle: band.Middle,
			Lower:  band.Lower,
		})
	}

	return series, nil
}
