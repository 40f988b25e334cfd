package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/raymyers/cconv/pkg/convert"
)

// Metrics are the server's Prometheus collectors, kept on a private
// registry so tests can build as many servers as they like.
type Metrics struct {
	Registry    *prometheus.Registry
	Conversions *prometheus.CounterVec
	Rewrites    *prometheus.CounterVec
	InputBytes  prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cconv_conversions_total",
			Help: "Conversions served, by direction and whether the result came from the cache or the engine.",
		}, []string{"direction", "source"}),
		Rewrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cconv_rewrites_total",
			Help: "Rewrites applied by the engine, by rule.",
		}, []string{"rule"}),
		InputBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cconv_conversion_input_bytes",
			Help:    "Size of submitted source code.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),
	}
	m.Registry.MustRegister(m.Conversions, m.Rewrites, m.InputBytes)
	return m
}

// Observe records one served conversion. Rule counts are only added for
// results the engine computed.
func (m *Metrics) Observe(res convert.Result, source string, inputLen int) {
	m.Conversions.WithLabelValues(res.Direction.String(), source).Inc()
	m.InputBytes.Observe(float64(inputLen))
	if source != sourceEngine {
		return
	}
	for rule, n := range res.Rewrites {
		m.Rewrites.WithLabelValues(rule).Add(float64(n))
	}
}
