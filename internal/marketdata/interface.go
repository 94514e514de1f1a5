package marketdata

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/folio/internal/core"
)

// Provider fetches daily price history for a ticker, newest bar first.
// Failures surface as core.ErrDataUnavailable.
type Provider interface {
	Name() string
	FetchDaily(ctx context.Context, ticker string) ([]core.Bar, error)
}

// PriceSource is the narrow read interface the ledger and alert store
// consume: just the latest close for a ticker.
type PriceSource interface {
	LatestClose(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// Recorder receives fetch and cache observations. Implemented by the
// metrics registry; a nil Recorder disables recording.
type Recorder interface {
	RecordPriceFetch(source, status string)
	RecordCacheLookup(hit bool)
}
