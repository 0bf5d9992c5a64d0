package middleware

import (
	"net/http"
	"strings"
	"time"

	"pagecraft-hq/callisto/pkg/telemetry/metrics"
)

// Metrics records request counts and latencies per route pattern.
// The label is the mux pattern, not the raw URL path, so templates with
// IDs in the path do not explode the label cardinality.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			collector.RecordHTTPRequest(r.Method, routePattern(r), rw.statusCode, time.Since(start))
		})
	}
}

// routePattern returns the matched mux pattern without its method prefix,
// falling back to a fixed label for unmatched requests.
func routePattern(r *http.Request) string {
	pattern := r.Pattern
	if pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}
