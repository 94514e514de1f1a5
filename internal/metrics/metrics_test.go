package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RecordPriceFetch(t *testing.T) {
	r := NewRegistry()

	r.RecordPriceFetch("alphavantage", "ok")
	r.RecordPriceFetch("alphavantage", "ok")
	r.RecordPriceFetch("alphavantage", "error")

	assert.Equal(t, float64(2),
		testutil.ToFloat64(r.priceFetches.WithLabelValues("alphavantage", "ok")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.priceFetches.WithLabelValues("alphavantage", "error")))
}

func TestRegistry_RecordCacheLookup(t *testing.T) {
	r := NewRegistry()

	r.RecordCacheLookup(true)
	r.RecordCacheLookup(false)
	r.RecordCacheLookup(true)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")))
}

func TestRegistry_RecordEvaluation(t *testing.T) {
	r := NewRegistry()

	r.RecordEvaluation(true, false)
	r.RecordEvaluation(false, false)
	r.RecordEvaluation(false, true)

	assert.Equal(t, float64(3), testutil.ToFloat64(r.alertsEvaluated))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.alertsTriggered))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.alertEvalErrors))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.RecordTrade("buy")
	r.SetAlertsActive(4)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "folio_trades_total")
	assert.Contains(t, body, "folio_alerts_active 4")
}
