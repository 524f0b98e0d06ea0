// Package metrics defines Prometheus instrumentation for the resume pipeline
// and the HTTP API.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline metrics.
var (
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parsume",
			Name:      "text_extractions_total",
			Help:      "Text extraction attempts by document format and outcome",
		},
		[]string{"format", "outcome"}, // outcome: "ok" / "empty"
	)

	ParsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parsume",
			Name:      "resume_parses_total",
			Help:      "Completed resume parses by outcome",
		},
		[]string{"outcome"}, // "parsed" / "empty"
	)

	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parsume",
			Name:      "fallback_extractions_total",
			Help:      "Structured-extraction fallback calls by status",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var registered bool

// Register registers all pipeline metrics with the default registry. Must be
// called once from main; tests exercise the unregistered collectors directly.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(ExtractionsTotal)
	prometheus.MustRegister(ParsesTotal)
	prometheus.MustRegister(FallbackTotal)
	registered = true
}
