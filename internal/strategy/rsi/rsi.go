// Package rsi implements the relative strength index strategy.
package rsi

import (
	"fmt"

	"github.com/quantfolio/folio/internal/core"
	"github.com/quantfolio/folio/internal/indicator"
)

// RSIStrategy fills the RSI column of the series.
type RSIStrategy struct {
	period int
}

// New creates an RSI strategy.
func New(period int) *RSIStrategy {
	return &RSIStrategy{period: period}
}

func (r *RSIStrategy) Name() string {
	return "rsi"
}

func (r *RSIStrategy) Description() string {
	return fmt.Sprintf("RSI (%d)", r.period)
}

func (r *RSIStrategy) Compute(bars []core.Bar) (core.IndicatorSeries, error) {
	chrono := core.Chronological(bars)
	if len(chrono) < r.period+1 {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need %d bars, have %d", r.period+1, len(chrono)))
	}

	closes := make([]float64, len(chrono))
	for i, bar := range chrono {
		closes[i] = bar.Close.InexactFloat64()
	}

	values := indicator.RSI(closes, r.period)

	// First RSI value belongs to the bar at index period.
	series := make(core.IndicatorSeries, 0, len(values))
	for i, v := range values {
		barIdx := r.period + i
		series = append(series, core.IndicatorPoint{
			Date:  chrono[barIdx].Date,
			Close: closes[barIdx],
			RSI:   v,
		})
	}

	return series, nil
}
