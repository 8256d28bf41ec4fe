// Package metrics exposes Prometheus instrumentation for the collection
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the collection pipeline metrics.
type Recorder struct {
	fetchTotal       *prometheus.CounterVec
	recordsValidated *prometheus.CounterVec
	cycleDuration    prometheus.Histogram
	tasksDue         prometheus.Gauge
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invest_fetch_total",
				Help: "Provider fetches by data type and outcome",
			},
			[]string{"data_type", "outcome"},
		),
		recordsValidated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invest_records_validated_total",
				Help: "Validated records by data type and verdict",
			},
			[]string{"data_type", "verdict"},
		),
		cycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "invest_collection_cycle_seconds",
				Help:    "Duration of one scheduling cycle in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		tasksDue: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "invest_tasks_due",
				Help: "Number of due tasks seen by the last cycle",
			},
		),
	}
}

// RecordFetch records one provider fetch outcome ("success", "empty",
// "error").
func (r *Recorder) RecordFetch(dataType, outcome string) {
	r.fetchTotal.WithLabelValues(dataType, outcome).Inc()
}

// RecordValidation records a validation report's totals.
func (r *Recorder) RecordValidation(dataType string, valid, invalid int) {
	r.recordsValidated.WithLabelValues(dataType, "valid").Add(float64(valid))
	r.recordsValidated.WithLabelValues(dataType, "invalid").Add(float64(invalid))
}

// RecordCycle records one scheduling cycle.
func (r *Recorder) RecordCycle(seconds float64, dueTasks int) {
	r.cycleDuration.Observe(seconds)
	r.tasksDue.Set(float64(dueTasks))
}
