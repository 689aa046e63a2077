// Package metrics records composition metrics in a private Prometheus
// registry and exports them for the node exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Composition outcomes used as the outcome label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder holds the composition metrics.
type Recorder struct {
	registry *prometheus.Registry

	Compositions *prometheus.CounterVec
	Errors       prometheus.Counter
	Hints        prometheus.Counter
	Duration     prometheus.Histogram
	Subgraphs    prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		Compositions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fedcompose",
				Name:      "compositions_total",
				Help:      "Total number of supergraph compositions by outcome",
			},
			[]string{"outcome"},
		),

		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fedcompose",
			Subsystem: "composition",
			Name:      "errors_total",
			Help:      "Total number of fatal composition errors",
		}),

		Hints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fedcompose",
			Subsystem: "composition",
			Name:      "hints_total",
			Help:      "Total number of composition hints",
		}),

		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fedcompose",
			Subsystem: "composition",
			Name:      "duration_seconds",
			Help:      "Composition duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		Subgraphs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fedcompose",
			Name:      "subgraphs",
			Help:      "Number of subgraphs in the last composition",
		}),
	}

	r.registry.MustRegister(r.Compositions, r.Errors, r.Hints, r.Duration, r.Subgraphs)
	return r
}

// Registry returns the underlying Prometheus registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records one composition.
func (r *Recorder) Observe(subgraphs, errors, hints int, duration time.Duration) {
	outcome := OutcomeSuccess
	if errors > 0 {
		outcome = OutcomeFailure
	}
	r.Compositions.WithLabelValues(outcome).Inc()
	r.Errors.Add(float64(errors))
	r.Hints.Add(float64(hints))
	r.Duration.Observe(duration.Seconds())
	r.Subgraphs.Set(float64(subgraphs))
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
