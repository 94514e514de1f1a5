package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bar represents a single daily price bar. Providers return bars newest first.
type Bar struct {
	Ticker string
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// Chronological returns a copy of bars ordered oldest first, the order
// indicator computations expect. The newest-first input is left untouched.
func Chronological(bars []Bar) []Bar {
	out := make([]Bar, len(bars))
	for i, b := range bars {
		out[len(bars)-1-i] = b
	}
	return out
}

// Direction is the side of a price threshold an alert watches.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// ParseDirection validates a textual direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionAbove:
		return DirectionAbove, nil
	case DirectionBelow:
		return DirectionBelow, nil
	default:
		return "", fmt.Errorf("invalid direction %q (want above or below)", s)
	}
}

// Alert is a persisted rule firing when a ticker's price crosses a threshold.
// Duplicates are permitted; alerts are addressed by position, not identity.
type Alert struct {
	PortfolioID int
	Ticker      string
	Threshold   decimal.Decimal
	Direction   Direction
}

// String renders the alert the way it appears in listings.
func (a Alert) String() string {
	return fmt.Sprintf("%s %s %s", a.Ticker, a.Direction, a.Threshold)
}

// alertJSON fixes the on-disk shape: threshold is a bare JSON number,
// not the quoted string decimal.Decimal produces by default.
type alertJSON struct {
	PortfolioID int             `json:"portfolio_id"`
	Ticker      string          `json:"ticker"`
	Threshold   json.RawMessage `json:"threshold"`
	Direction   Direction       `json:"direction"`
}

func (a Alert) MarshalJSON() ([]byte, error) {
	return json.Marshal(alertJSON{
		PortfolioID: a.PortfolioID,
		Ticker:      a.Ticker,
		Threshold:   json.RawMessage(a.Threshold.String()),
		Direction:   a.Direction,
	})
}

func (a *Alert) UnmarshalJSON(data []byte) error {
	var raw alertJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	threshold, err := decimal.NewFromString(string(raw.Threshold))
	if err != nil {
		return fmt.Errorf("parsing threshold: %w", err)
	}
	direction, err := ParseDirection(string(raw.Direction))
	if err != nil {
		return err
	}
	a.PortfolioID = raw.PortfolioID
	a.Ticker = strings.ToUpper(raw.Ticker)
	a.Threshold = threshold
	a.Direction = direction
	return nil
}

// Outlook is a bounded classification derived from the latest point of an
// indicator series. It has no lifecycle of its own.
type Outlook string

const (
	OutlookBullish           Outlook = "Bullish"
	OutlookBearish           Outlook = "Bearish"
	OutlookHold              Outlook = "Hold"
	OutlookBullishOversold   Outlook = "Bullish (Oversold)"
	OutlookBearishOverbought Outlook = "Bearish (Overbought)"
	OutlookBullishBelowLower Outlook = "Bullish (Below Lower Band)"
	OutlookBearishAboveUpper Outlook = "Bearish (Above Upper Band)"
	OutlookUnknown           Outlook = "Unknown"
)

// IndicatorPoint is one row of a strategy's computed series: the close it was
// derived from plus whichever columns the strategy fills in.
type IndicatorPoint struct {
	Date   time.Time
	Close  float64
	Signal int // moving average cross: 1 bullish, -1 bearish, 0 flat
	RSI    float64
	Upper  float64
	Middle float64
	Lower  float64
}

// IndicatorSeries is a chronological sequence of indicator rows.
type IndicatorSeries []IndicatorPoint

// Latest returns the most recent row, false when the series is empty.
func (s IndicatorSeries) Latest() (IndicatorPoint, bool) {
	if len(s) == 0 {
		return IndicatorPoint{}, false
	}
	return s[len(s)-1], true
}
