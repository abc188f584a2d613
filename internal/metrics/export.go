package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for exports_total.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeEncodeFailure = "encode_failure"
)

// Export holds the export pipeline metrics.
type Export struct {
	exports *prometheus.CounterVec
	size    *prometheus.HistogramVec
}

// NewExport creates the export metrics and registers them with reg.
func NewExport(reg prometheus.Registerer) (*Export, error) {
	m := &Export{
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exports_total",
				Help: "Total number of export attempts by format and outcome.",
			},
			[]string{"format", "outcome"},
		),
		size: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "export_size_bytes",
				Help:    "Size of generated export files.",
				Buckets: prometheus.ExponentialBuckets(512, 4, 10),
			},
			[]string{"format"},
		),
	}

	for _, c := range []prometheus.Collector{m.exports, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one export attempt. size is only recorded for successful exports.
func (m *Export) Observe(format, outcome string, size int) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.size.WithLabelValues(format).Observe(float64(size))
	}
}
