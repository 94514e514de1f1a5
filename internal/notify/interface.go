// Package notify delivers triggered-alert notifications.
package notify

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/folio/internal/core"
)

// Message describes one triggered alert.
type Message struct {
	PortfolioID int             `json:"portfolio_id"`
	Ticker      string          `json:"ticker"`
	Direction   core.Direction  `json:"direction"`
	Threshold   decimal.Decimal `json:"threshold"`
	Price       decimal.Decimal `json:"price"`
	At          time.Time       `json:"at"`
}

// Text renders the message for plain-text channels.
func (m Message) Text() string {
	return fmt.Sprintf("🚨 ALERT: %s is %s, %s %s",
		m.Ticker, m.Price, m.Direction, m.Threshold)
}

// Notifier defines the interface for alert notification channels.
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Send delivers a single triggered-alert message
	Send(msg Message) error
}
