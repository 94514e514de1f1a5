package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// Market data metrics
	priceFetches *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec

	// Ledger metrics
	trades *prometheus.CounterVec

	// Alert metrics
	alertsEvaluated prometheus.Counter
	alertsTriggered prometheus.Counter
	alertEvalErrors prometheus.Counter
	alertsActive    prometheus.Gauge

	// Watch loop metrics
	watchCycles        prometheus.Counter
	watchCycleDuration prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		priceFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_price_fetches_total",
				Help: "Total number of provider price fetches",
			},
			[]string{"source", "status"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_cache_lookups_total",
				Help: "Total number of market data cache lookups",
			},
			[]string{"result"},
		),
		trades: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_trades_total",
				Help: "Total number of completed ledger trades",
			},
			[]string{"side"},
		),
		alertsEvaluated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_alerts_evaluated_total",
				Help: "Total number of alert evaluations",
			},
		),
		alertsTriggered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_alerts_triggered_total",
				Help: "Total number of triggered alerts",
			},
		),
		alertEvalErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_alert_eval_errors_total",
				Help: "Total number of alert evaluations failing on price data",
			},
		),
		alertsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "folio_alerts_active",
				Help: "Number of alerts currently stored",
			},
		),
		watchCycles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_watch_cycles_total",
				Help: "Total number of completed watch cycles",
			},
		),
		watchCycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "folio_watch_cycle_duration_seconds",
				Help:    "Watch cycle duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(r.priceFetches)
	reg.MustRegister(r.cacheLookups)
	reg.MustRegister(r.trades)
	reg.MustRegister(r.alertsEvaluated)
	reg.MustRegister(r.alertsTriggered)
	reg.MustRegister(r.alertEvalErrors)
	reg.MustRegister(r.alertsActive)
	reg.MustRegister(r.watchCycles)
	reg.MustRegister(r.watchCycleDuration)

	return r
}

// RecordPriceFetch records a provider fetch outcome.
func (r *Registry) RecordPriceFetch(source, status string) {
	r.priceFetches.WithLabelValues(source, status).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func (r *Registry) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordTrade records a completed trade.
func (r *Registry) RecordTrade(side string) {
	r.trades.WithLabelValues(side).Inc()
}

// RecordEvaluation records one alert evaluation outcome.
func (r *Registry) RecordEvaluation(triggered, failed bool) {
	r.alertsEvaluated.Inc()
	if triggered {
		r.alertsTriggered.Inc()
	}
	if failed {
		r.alertEvalErrors.Inc()
	}
}

// SetAlertsActive sets the stored alert count.
func (r *Registry) SetAlertsActive(count int) {
	r.alertsActive.Set(float64(count))
}

// RecordWatchCycle records a watch cycle completion.
func (r *Registry) RecordWatchCycle(duration float64) {
	r.watchCycles.Inc()
	r.watchCycleDuration.Observe(duration)
}

// Handler returns the HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}
