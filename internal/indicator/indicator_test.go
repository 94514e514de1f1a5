package indicator

import (
	"math"
	"testing"
)

func TestSMA_Calculate(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15}

	sma := SMA(prices, 3)

	// SMA(3) for [10,11,12,13,14,15]:
	// [0] = (10+11+12)/3 = 11
	// [1] = (11+12+13)/3 = 12
	// [2] = (12+13+14)/3 = 13
	// [3] = (13+14+15)/3 = 14
	expected := []float64{11, 12, 13, 14}

	if len(sma) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(sma))
	}
	for i, v := range expected {
		if sma[i] != v {
			t.Errorf("sma[%d] = %f, want %f", i, sma[i], v)
		}
	}
}

func TestSMA_NotEnoughData(t *testing.T) {
	if sma := SMA([]float64{10, 11}, 5); len(sma) != 0 {
		t.Errorf("expected empty slice, got %d values", len(sma))
	}
	if sma := SMA([]float64{10, 11}, 0); len(sma) != 0 {
		t.Errorf("expected empty slice for zero period, got %d values", len(sma))
	}
}

func TestEMA_Calculate(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15}
	ema := EMA(prices, 3)

	if len(ema) != 4 {
		t.Fatalf("expected 4 values, got %d", len(ema))
	}

	// First EMA = SMA(first 3) = 11; multiplier = 2/4 = 0.5
	// ema[1] = (13-11)*0.5 + 11 = 12
	if ema[0] != 11 {
		t.Errorf("ema[0] = %f, want 11", ema[0])
	}
	if ema[1] != 12 {
		t.Errorf("ema[1] = %f, want 12", ema[1])
	}
}

func TestRSI_AllGains(t *testing.T) {
	// Monotonically rising prices: no losses, RSI pegged at 100
	prices := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	rsi := RSI(prices, 3)

	if len(rsi) != len(prices)-3 {
		t.Fatalf("expected %d values, got %d", len(prices)-3, len(rsi))
	}
	for i, v := range rsi {
		if v != 100 {
			t.Errorf("rsi[%d] = %f, want 100", i, v)
		}
	}
}

func TestRSI_Balanced(t *testing.T) {
	// Alternating equal gains and losses: avgGain == avgLoss, RSI = 50
	prices := []float64{10, 11, 10, 11, 10, 11, 10}
	rsi := RSI(prices, 6)

	if len(rsi) != 1 {
		t.Fatalf("expected 1 value, got %d", len(rsi))
	}
	if math.Abs(rsi[0]-50) > 1e-9 {
		t.Errorf("rsi = %f, want 50", rsi[0])
	}
}

func TestRSI_NotEnoughData(t *testing.T) {
	if rsi := RSI([]float64{10, 11, 12}, 14); len(rsi) != 0 {
		t.Errorf("expected empty slice, got %d values", len(rsi))
	}
}

func TestBollinger_FlatPrices(t *testing.T) {
	// Zero variance: all bands collapse onto the mean
	prices := []float64{50, 50, 50, 50, 50}
	bands := Bollinger(prices, 3, 2)

	if len(bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(bands))
	}
	for i, b := range bands {
		if b.Upper != 50 || b.Middle != 50 || b.Lower != 50 {
			t.Errorf("bands[%d] = %+v, want all 50", i, b)
		}
	}
}

func TestBollinger_Envelope(t *testing.T) {
	prices := []float64{10, 20, 30}
	bands := Bollinger(prices, 3, 2)

	if len(bands) != 1 {
		t.Fatalf("expected 1 band, got %d", len(bands))
	}

	// mean = 20, population sigma = sqrt(((10-20)^2+(0)^2+(10)^2)/3) = sqrt(200/3)
	sigma := math.Sqrt(200.0 / 3.0)
	if math.Abs(bands[0].Upper-(20+2*sigma)) > 1e-9 {
		t.Errorf("upper = %f, want %f", bands[0].Upper, 20+2*sigma)
	}
	if math.Abs(bands[0].Lower-(20-2*sigma)) > 1e-9 {
		t.Errorf("lower = %f, want %f", bands[0].Lower, 20-2*sigma)
	}
	if bands[0].Middle != 20 {
		t.Errorf("middle = %f, want 20", bands[0].Middle)
	}
}
