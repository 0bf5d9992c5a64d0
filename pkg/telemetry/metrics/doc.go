// Package metrics provides Prometheus metrics collection for Callisto.
//
// The Collector aggregates three metric groups:
//
//   - engine: extraction and substitution runs, latency, cache outcomes,
//     and unresolved token counts
//   - http: request counts and latency by route pattern
//   - library: current template count and reload outcomes
//
// All metrics use the pagecraft_callisto prefix. Template identifiers are
// never used as label values; they are unbounded and would blow up series
// cardinality.
//
// The Collector implements the engine's Observer interface, so wiring it
// into the pipeline is one call:
//
//	collector := metrics.NewCollector(nil)
//	eng := engine.New().WithObserver(collector)
//	http.Handle("/metrics", collector.Handler())
package metrics
