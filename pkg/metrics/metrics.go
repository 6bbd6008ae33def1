// Package metrics exposes parse pipeline counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the pipeline counters. A nil *Metrics is valid and
// records nothing, so callers don't guard every increment.
type Metrics struct {
	registry *prometheus.Registry

	receiptsParsed   *prometheus.CounterVec
	parseFailures    *prometheus.CounterVec
	itemsExtracted   prometheus.Counter
	discountsApplied prometheus.Counter
	anomalies        *prometheus.CounterVec
}

// New creates the pipeline counters on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		receiptsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receipts_parsed_total",
			Help: "Receipts successfully parsed, by identified store.",
		}, []string{"store"}),
		parseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receipt_parse_failures_total",
			Help: "Receipts rejected with a fatal parse error, by reason.",
		}, []string{"reason"}),
		itemsExtracted: factory.NewCounter(prometheus.CounterOpts{
			Name: "receipt_items_extracted_total",
			Help: "Item records extracted across all receipts.",
		}),
		discountsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "receipt_discounts_applied_total",
			Help: "Discount rows reconciled into an item price.",
		}),
		anomalies: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receipt_parse_anomalies_total",
			Help: "Non-fatal irregularities absorbed during parsing, by kind.",
		}, []string{"kind"}),
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ReceiptParsed(store string) {
	if m == nil {
		return
	}
	m.receiptsParsed.WithLabelValues(store).Inc()
}

func (m *Metrics) ParseFailed(reason string) {
	if m == nil {
		return
	}
	m.parseFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) ItemsExtracted(n int) {
	if m == nil {
		return
	}
	m.itemsExtracted.Add(float64(n))
}

func (m *Metrics) DiscountApplied() {
	if m == nil {
		return
	}
	m.discountsApplied.Inc()
}

func (m *Metrics) Anomaly(kind string) {
	if m == nil {
		return
	}
	m.anomalies.WithLabelValues(kind).Inc()
}
