// Package movingavg implements the fast/slow moving average strategy.
package movingavg

import (
	"fmt"

	"github.com/quantfolio/folio/internal/core"
	"github.com/quantfolio/folio/internal/indicator"
)

// MovingAvg fills the Signal column: 1 while the fast SMA is above the
// slow SMA, -1 while below, 0 when they coincide.
type MovingAvg struct {
	fastPeriod int
	slowPeriod int
}

// New creates a MovingAvg strategy.
func New(fastPeriod, slowPeriod int) *MovingAvg {
	return &MovingAvg{
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
	}
}

func (m *MovingAvg) Name() string {
	return "moving_avg"
}

func (m *MovingAvg) Description() string {
	return fmt.Sprintf("Moving Average (%d/%d)", m.fastPeriod, m.slowPeriod)
}

func (m *MovingAvg) Compute(bars []core.Bar) (core.IndicatorSeries, error) {
	chrono := core.Chronological(bars)
	if len(chrono) < m.slowPeriod {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need %d bars, have %d", m.slowPeriod, len(chrono)))
	}

	closes := make([]float64, len(chrono))
	for i, bar := range chrono {
		closes[i] = bar.Close.InexactFloat64()
	}

	fast := indicator.SMA(closes, m.fastPeriod)
	slow := indicator.SMA(closes, m.slowPeriod)

	// Rows exist where both averages do; the slow one starts later.
	series := make(core.IndicatorSeries, 0, len(slow))
	offset := len(fast) - len(slow)
	if offset < 0 {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("fast period %d exceeds slow period %d", m.fastPeriod, m.slowPeriod))
	}

	for i := range slow {
		barIdx := m.slowPeriod - 1 + i
		f := fast[offset+i]
		s := slow[i]

		signal := 0
		switch {
		case f > s:
			signal = 1
		case f < s:
			signal = -1
		}

		series = append(series, core.IndicatorPoint{
			Date:   chrono[barIdx].Date,
			Close:  closes[barIdx],
			Signal: signal,
		})
	}

	return series, nil
}
