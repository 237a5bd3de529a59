package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes engine-level Prometheus metrics.
type Recorder struct {
	fitsTotal   *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	fitDuration *prometheus.HistogramVec
	persistence *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volsense_fits_total",
				Help: "Total number of completed GARCH fits",
			},
			[]string{"dist", "mean_model"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volsense_errors_total",
				Help: "Total number of engine errors by kind",
			},
			[]string{"kind"},
		),
		fitDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "volsense_operation_duration_seconds",
				Help:    "Duration of engine operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		persistence: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "volsense_last_persistence",
				Help: "Persistence of the most recent fit for a series",
			},
			[]string{"series"},
		),
	}
}

// RecordFit records a completed fit.
func (r *Recorder) RecordFit(dist, meanModel string) {
	r.fitsTotal.WithLabelValues(dist, meanModel).Inc()
}

// RecordError records an engine error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDuration records operation latency in seconds.
func (r *Recorder) RecordDuration(op string, seconds float64) {
	r.fitDuration.WithLabelValues(op).Observe(seconds)
}

// RecordPersistence records the persistence of the latest fit for a series.
func (r *Recorder) RecordPersistence(series string, value float64) {
	r.persistence.WithLabelValues(series).Set(value)
}
