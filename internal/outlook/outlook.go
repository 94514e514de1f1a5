// Package outlook maps computed indicator series to a bounded outlook
// vocabulary. Both entry points are total functions: unrecognized input
// yields OutlookUnknown, never an error.
package outlook

import (
	"strings"

	"github.com/quantfolio/folio/internal/core"
)

// RSI thresholds shared with the rsi strategy.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// ForStrategy classifies the latest row of a named strategy's series.
func ForStrategy(strategyName string, latest core.IndicatorPoint) core.Outlook {
	switch strategyName {
	case "moving_avg":
		switch {
		case latest.Signal > 0:
			return core.OutlookBullish
		case latest.Signal < 0:
			return core.OutlookBearish
		default:
			return core.OutlookHold
		}

	case "rsi":
		switch {
		case latest.RSI > RSIOverbought:
			return core.OutlookBearishOverbought
		case latest.RSI < RSIOversold:
			return core.OutlookBullishOversold
		default:
			return core.OutlookHold
		}

	case "bollinger":
		switch {
		case latest.Close > latest.Upper:
			return core.OutlookBearishAboveUpper
		case latest.Close < latest.Lower:
			return core.OutlookBullishBelowLower
		default:
			return core.OutlookHold
		}

	default:
		return core.OutlookUnknown
	}
}

// ForSeries classifies the most recent row of a series. An empty series has
// no latest row and reads as Unknown.
func ForSeries(strategyName string, series core.IndicatorSeries) core.Outlook {
	latest, ok := series.Latest()
	if !ok {
		return core.OutlookUnknown
	}
	return ForStrategy(strategyName, latest)
}

// FromLabel maps a bare textual signal to a decorated label. Used when the
// caller already reduced a series to a single word.
func FromLabel(text string) string {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "bullish":
		return "📈 Bullish"
	case "bearish":
		return "📉 Bearish"
	case "hold":
		return "⏸ Hold"
	default:
		return "❓ Unknown"
	}
}

// Decorate prefixes an outlook with its display emoji. Qualified labels
// like "Bullish (Oversold)" keep their qualifier.
func Decorate(o core.Outlook) string {
	lower := strings.ToLower(string(o))
	switch {
	case strings.HasPrefix(lower, "bullish"):
		return "📈 " + string(o)
	case strings.HasPrefix(lower, "bearish"):
		return "📉 " + string(o)
	case strings.HasPrefix(lower, "hold"):
		return "⏸ " + string(o)
	default:
		return "❓ " + string(o)
	}
}
