package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace and subsystem applied to every metric name.
const (
	Namespace = "pagecraft"
	Subsystem = "callisto"
)

// Collector is the orchestrator for all Prometheus metrics in Callisto.
// It manages metric registration and provides a unified interface for
// recording metrics across all components.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	// Engine pipeline metrics
	engineMetrics *EngineMetrics

	// HTTP request metrics
	httpMetrics *HTTPMetrics

	// Template library metrics
	libraryMetrics *LibraryMetrics
}

// NewCollector creates a new metrics collector backed by the provided
// Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(nil)
//	http.Handle("/metrics", collector.Handler())
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		enabled:        true,
		registry:       registry,
		engineMetrics:  NewEngineMetrics(registry),
		httpMetrics:    NewHTTPMetrics(registry),
		libraryMetrics: NewLibraryMetrics(registry),
	}
}

// NewDisabledCollector creates a collector whose recording methods are
// no-ops. Useful when metrics are switched off in configuration but the
// wiring still expects a collector.
func NewDisabledCollector() *Collector {
	c := NewCollector(nil)
	c.enabled = false
	return c
}

// ExtractionCompleted records metrics for one extraction run.
// It satisfies the engine's Observer interface.
func (c *Collector) ExtractionCompleted(templateID string, placeholders int, duration time.Duration, cacheHit bool) {
	if !c.enabled {
		return
	}
	c.engineMetrics.RecordExtraction(templateID, placeholders, duration, cacheHit)
}

// SubstitutionCompleted records metrics for one substitution run.
// It satisfies the engine's Observer interface.
func (c *Collector) SubstitutionCompleted(templateID string, unresolved int, duration time.Duration) {
	if !c.enabled {
		return
	}
	c.engineMetrics.RecordSubstitution(templateID, unresolved, duration)
}

// RecordHTTPRequest records metrics for a completed HTTP request.
//
// Parameters:
//   - method: HTTP method ("GET", "POST")
//   - path: route pattern, not the raw URL, to bound cardinality
//   - status: response status code
//   - duration: total request duration
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if !c.enabled {
		return
	}
	c.httpMetrics.RecordRequest(method, path, status, duration)
}

// UpdateTemplateCount updates the gauge tracking how many templates the
// library currently holds.
func (c *Collector) UpdateTemplateCount(count int) {
	if !c.enabled {
		return
	}
	c.libraryMetrics.UpdateTemplateCount(count)
}

// RecordLibraryReload records one library reload, successful or not.
func (c *Collector) RecordLibraryReload(success bool) {
	if !c.enabled {
		return
	}
	c.libraryMetrics.RecordReload(success)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
