package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfolio/folio/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newLedger(t *testing.T, cash string) *Ledger {
	t.Helper()
	l, err := New(dec(cash), nil)
	require.NoError(t, err)
	return l
}

func TestNew_RejectsNegativeCash(t *testing.T) {
	_, err := New(dec("-1"), nil)
	assert.Error(t, err)
}

func TestBuy_NewHolding(t *testing.T) {
	l := newLedger(t, "10000")

	trade, err := l.Buy("aapl", 10, dec("150.50"))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", trade.Ticker)
	assert.Equal(t, int64(10), trade.SharesAfter)
	assert.True(t, trade.Gross.Equal(dec("1505")))
	assert.True(t, l.Cash().Equal(dec("8495")))
	assert.Equal(t, int64(10), l.Shares("AAPL"))
}

func TestBuy_IncrementsExistingHolding(t *testing.T) {
	l := newLedger(t, "10000")

	_, err := l.Buy("AAPL", 10, dec("100"))
	require.NoError(t, err)
	_, err = l.Buy("AAPL", 5, dec("110"))
	require.NoError(t, err)

	assert.Equal(t, int64(15), l.Shares("AAPL"))
	assert.Len(t, l.Holdings(), 1)
	assert.True(t, l.Cash().Equal(dec("8450")))
}

func TestBuy_InsufficientFundsLeavesStateUnchanged(t *testing.T) {
	l := newLedger(t, "100")

	_, err := l.Buy("AAPL", 10, dec("50"))
	assert.ErrorIs(t, err, core.ErrInsufficientFunds)
	assert.True(t, l.Cash().Equal(dec("100")))
	assert.Empty(t, l.Holdings())
}

func TestBuy_RejectsBadInput(t *testing.T) {
	l := newLedger(t, "10000")

	_, err := l.Buy("AAPL", 0, dec("100"))
	assert.ErrorIs(t, err, core.ErrInvalidQuantity)

	_, err = l.Buy("AAPL", -3, dec("100"))
	assert.ErrorIs(t, err, core.ErrInvalidQuantity)

	_, err = l.Buy("AAPL", 1, dec("0"))
	assert.ErrorIs(t, err, core.ErrInvalidPrice)

	assert.True(t, l.Cash().Equal(dec("10000")))
	assert.Empty(t, l.Holdings())
}

func TestSell_Partial(t *testing.T) {
	l := newLedger(t, "10000")
	_, err := l.Buy("NVDA", 10, dec("500"))
	require.NoError(t, err)

	trade, err := l.Sell("NVDA", 4, dec("550"))
	require.NoError(t, err)

	assert.Equal(t, int64(6), trade.SharesAfter)
	assert.Equal(t, int64(6), l.Shares("NVDA"))
	// 10000 - 5000 + 2200
	assert.True(t, l.Cash().Equal(dec("7200")))
}

func TestSell_ExactMatchRemovesHolding(t *testing.T) {
	l := newLedger(t, "10000")
	_, err := l.Buy("TSLA", 3, dec("200"))
	require.NoError(t, err)

	_, err = l.Sell("TSLA", 3, dec("210"))
	require.NoError(t, err)

	assert.Empty(t, l.Holdings(), "full sale must remove the ticker, never retain zero shares")
	assert.Equal(t, int64(0), l.Shares("TSLA"))
}

func TestSell_OversellIsHardRejection(t *testing.T) {
	l := newLedger(t, "10000")
	_, err := l.Buy("AAPL", 5, dec("100"))
	require.NoError(t, err)
	cashBefore := l.Cash()

	_, err = l.Sell("AAPL", 6, dec("100"))
	assert.ErrorIs(t, err, core.ErrInsufficientShares)

	// never a partial sell
	assert.Equal(t, int64(5), l.Shares("AAPL"))
	assert.True(t, l.Cash().Equal(cashBefore))
}

func TestSell_TickerNotHeld(t *testing.T) {
	l := newLedger(t, "10000")

	_, err := l.Sell("MSFT", 1, dec("100"))
	assert.ErrorIs(t, err, core.ErrTickerNotHeld)
}

func TestCashConservation_NoDrift(t *testing.T) {
	// Repeated trades at awkward decimal prices must conserve cash exactly:
	// cash_before - cash_after == cost_of_buys - revenue_of_sells.
	l := newLedger(t, "100000")
	start := l.Cash()

	buys := decimal.Zero
	sells := decimal.Zero
	price := dec("10.13")
	for i := 0; i < 500; i++ {
		trade, err := l.Buy("DRIP", 3, price)
		require.NoError(t, err)
		buys = buys.Add(trade.Gross)

		trade, err = l.Sell("DRIP", 2, price.Add(dec("0.07")))
		require.NoError(t, err)
		sells = sells.Add(trade.Gross)
	}

	assert.True(t, start.Sub(l.Cash()).Equal(buys.Sub(sells)),
		"cash delta %s != buys-sells %s", start.Sub(l.Cash()), buys.Sub(sells))
	assert.False(t, l.Cash().IsNegative())
}

func TestCashNeverNegative(t *testing.T) {
	l := newLedger(t, "99.99")

	_, err := l.Buy("AAPL", 1, dec("99.99"))
	require.NoError(t, err)
	assert.True(t, l.Cash().IsZero())

	_, err = l.Buy("AAPL", 1, dec("0.01"))
	assert.ErrorIs(t, err, core.ErrInsufficientFunds)
	assert.False(t, l.Cash().IsNegative())
}

func TestSeed(t *testing.T) {
	l := newLedger(t, "10000")

	require.NoError(t, l.Seed("aapl", 10))
	assert.Equal(t, int64(10), l.Shares("AAPL"))
	assert.True(t, l.Cash().Equal(dec("10000")), "seeding must not touch cash")

	assert.ErrorIs(t, l.Seed("NVDA", 0), core.ErrInvalidQuantity)
}
