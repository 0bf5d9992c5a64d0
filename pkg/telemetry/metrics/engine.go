package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics tracks metrics for the placeholder pipeline.
//
// Metrics:
//   - pagecraft_callisto_extractions_total: extraction runs by cache outcome
//   - pagecraft_callisto_extraction_duration_seconds: extraction latency
//   - pagecraft_callisto_placeholders_extracted: placeholders found per run
//   - pagecraft_callisto_substitutions_total: substitution runs
//   - pagecraft_callisto_substitution_duration_seconds: substitution latency
//   - pagecraft_callisto_unresolved_tokens: tokens left literal per run
type EngineMetrics struct {
	extractionsTotal     *prometheus.CounterVec
	extractionDuration   prometheus.Histogram
	placeholdersPerRun   prometheus.Histogram
	substitutionsTotal   prometheus.Counter
	substitutionDuration prometheus.Histogram
	unresolvedPerRun     prometheus.Histogram
}

// NewEngineMetrics creates and registers engine metrics with the provided registry.
func NewEngineMetrics(registry *prometheus.Registry) *EngineMetrics {
	em := &EngineMetrics{
		extractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "extractions_total",
				Help:      "Total number of placeholder extraction runs",
			},
			[]string{"cache"},
		),

		extractionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "extraction_duration_seconds",
				Help:      "Duration of placeholder extraction runs in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),

		placeholdersPerRun: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "placeholders_extracted",
				Help:      "Number of unique placeholders found per extraction run",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),

		substitutionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "substitutions_total",
				Help:      "Total number of substitution runs",
			},
		),

		substitutionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "substitution_duration_seconds",
				Help:      "Duration of substitution runs in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),

		unresolvedPerRun: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "unresolved_tokens",
				Help:      "Number of tokens left unresolved per substitution run",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
	}

	registry.MustRegister(
		em.extractionsTotal,
		em.extractionDuration,
		em.placeholdersPerRun,
		em.substitutionsTotal,
		em.substitutionDuration,
		em.unresolvedPerRun,
	)

	return em
}

// RecordExtraction records metrics for one extraction run. The template
// identifier is accepted for interface symmetry but deliberately not used
// as a label; template IDs are unbounded.
func (em *EngineMetrics) RecordExtraction(_ string, placeholders int, duration time.Duration, cacheHit bool) {
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	em.extractionsTotal.WithLabelValues(outcome).Inc()
	em.extractionDuration.Observe(duration.Seconds())
	em.placeholdersPerRun.Observe(float64(placeholders))
}

// RecordSubstitution records metrics for one substitution run.
func (em *EngineMetrics) RecordSubstitution(_ string, unresolved int, duration time.Duration) {
	em.substitutionsTotal.Inc()
	em.substitutionDuration.Observe(duration.Seconds())
	em.unresolvedPerRun.Observe(float64(unresolved))
}
