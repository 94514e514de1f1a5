package movingavg

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/folio/internal/core"
	"github.com/quantfolio/folio/internal/strategy"
)

func TestMovingAvg_ImplementsStrategy(t *testing.T) {
	var _ strategy.Strategy = (*MovingAvg)(nil)
}

// barsNewestFirst builds daily bars from chronological closes, returned in
// the newest-first order providers use.
func barsNewestFirst(closes ...float64) []core.Bar {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(closes))
	for i, c := range closes {
		bars[len(closes)-1-i] = core.Bar{
			Date:  start.AddDate(0, 0, i),
			Close: decimal.NewFromFloat(c),
		}
	}
	return bars
}

func TestCompute_RisingMarketIsBullish(t *testing.T) {
	s := New(2, 4)

	series, err := s.Compute(barsNewestFirst(10, 11, 12, 13, 14, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, ok := series.Latest()
	if !ok {
		t.Fatal("expected a latest row")
	}
	// fast SMA(2) of a rising series sits above slow SMA(4)
	if latest.Signal != 1 {
		t.Errorf("signal = %d, want 1", latest.Signal)
	}
	if latest.Close != 15 {
		t.Errorf("latest close = %f, want 15", latest.Close)
	}
}

func TestCompute_FallingMarketIsBearish(t *testing.T) {
	s := New(2, 4)

	series, err := s.Compute(barsNewestFirst(15, 14, 13, 12, 11, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, _ := series.Latest()
	if latest.Signal != -1 {
		t.Errorf("signal = %d, want -1", latest.Signal)
	}
}

func TestCompute_FlatMarketIsNeutral(t *testing.T) {
	s := New(2, 4)

	series, err := s.Compute(barsNewestFirst(10, 10, 10, 10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, _ := series.Latest()
	if latest.Signal != 0 {
		t.Errorf("signal = %d, want 0", latest.Signal)
	}
}

func TestCompute_SeriesLength(t *testing.T) {
	s := New(2, 4)

	series, err := s.Compute(barsNewestFirst(10, 11, 12, 13, 14, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// one row per slow-SMA point: 6 - 4 + 1
	if len(series) != 3 {
		t.Errorf("len(series) = %d, want 3", len(series))
	}
}

func TestCompute_NotEnoughData(t *testing.T) {
	s := New(20, 50)

	_, err := s.Compute(barsNewestFirst(10, 11, 12))
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
