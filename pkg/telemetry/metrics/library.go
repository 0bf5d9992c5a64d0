package metrics

import "github.com/prometheus/client_golang/prometheus"

// LibraryMetrics tracks metrics for the template library.
//
// Metrics:
//   - pagecraft_callisto_library_templates: current template count
//   - pagecraft_callisto_library_reloads_total: reloads by outcome
type LibraryMetrics struct {
	templateCount prometheus.Gauge
	reloadsTotal  *prometheus.CounterVec
}

// NewLibraryMetrics creates and registers library metrics with the provided registry.
func NewLibraryMetrics(registry *prometheus.Registry) *LibraryMetrics {
	lm := &LibraryMetrics{
		templateCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "library_templates",
				Help:      "Number of templates currently held by the library",
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "library_reloads_total",
				Help:      "Total number of template library reloads",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(lm.templateCount, lm.reloadsTotal)

	return lm
}

// UpdateTemplateCount sets the current template count gauge.
func (lm *LibraryMetrics) UpdateTemplateCount(count int) {
	lm.templateCount.Set(float64(count))
}

// RecordReload records one library reload.
func (lm *LibraryMetrics) RecordReload(success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	lm.reloadsTotal.WithLabelValues(outcome).Inc()
}
