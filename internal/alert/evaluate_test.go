package alert

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfolio/folio/internal/core"
)

type fakePrices map[string]string

func (f fakePrices) LatestClose(_ context.Context, ticker string) (decimal.Decimal, error) {
	p, ok := f[ticker]
	if !ok {
		return decimal.Zero, core.ErrDataUnavailable
	}
	return decimal.RequireFromString(p), nil
}

func TestEvaluateAll_PartialFailureIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, 1, "AAPL", dec("100"), core.DirectionAbove)
	require.NoError(t, err)
	_, err = store.Add(ctx, 1, "BAD", dec("1"), core.DirectionAbove)
	require.NoError(t, err)

	results, err := store.EvaluateAll(ctx, fakePrices{"AAPL": "150"})
	require.NoError(t, err, "one bad ticker must not abort the batch")
	require.Len(t, results, 2)

	aapl := results[0]
	assert.NoError(t, aapl.Err)
	assert.True(t, aapl.Triggered)
	assert.True(t, aapl.Price.Equal(dec("150")))

	bad := results[1]
	assert.ErrorIs(t, bad.Err, core.ErrPriceUnavailable)
	assert.False(t, bad.Triggered)
}

func TestEvaluateAll_InclusiveComparison(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, 1, "UP", dec("100"), core.DirectionAbove)
	require.NoError(t, err)
	_, err = store.Add(ctx, 1, "DOWN", dec("100"), core.DirectionBelow)
	require.NoError(t, err)

	// exactly at threshold fires in both directions
	results, err := store.EvaluateAll(ctx, fakePrices{"UP": "100", "DOWN": "100"})
	require.NoError(t, err)
	assert.True(t, results[0].Triggered, "above fires at price == threshold")
	assert.True(t, results[1].Triggered, "below fires at price == threshold")

	results, err = store.EvaluateAll(ctx, fakePrices{"UP": "99.99", "DOWN": "100.01"})
	require.NoError(t, err)
	assert.False(t, results[0].Triggered)
	assert.False(t, results[1].Triggered)
}

func TestEvaluateAll_Empty(t *testing.T) {
	store, _ := newTestStore(t)

	results, err := store.EvaluateAll(context.Background(), fakePrices{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEvaluateAll_ResyncsBeforeEvaluating(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, 1, "AAPL", dec("100"), core.DirectionAbove)
	require.NoError(t, err)

	// a second store over the same file adds another alert
	second := NewStore(mustLocalFS(t, dir), "alerts.json", nil)
	_, err = second.Add(ctx, 1, "NVDA", dec("500"), core.DirectionBelow)
	require.NoError(t, err)

	results, err := store.EvaluateAll(ctx, fakePrices{"AAPL": "150", "NVDA": "400"})
	require.NoError(t, err)
	assert.Len(t, results, 2, "evaluation must see alerts persisted by other writers")
}
