// Package server provides the HTTP API for the placeholder engine.
//
// Endpoints:
//
//	POST /v1/extract                       extract placeholders from an export in the body
//	POST /v1/substitute                    substitute values into an export in the body
//	GET  /v1/templates                     list stored templates
//	GET  /v1/templates/{id}                fetch one stored template
//	GET  /v1/templates/{id}/placeholders   fetch a stored template's registry
//	POST /v1/templates/{id}/substitute     substitute values into a stored template
//	POST /v1/templates/reload              re-scan the templates directory
//	GET  /health, /ready, /version         probes and build info
//	GET  /metrics                          Prometheus metrics (when enabled)
//
// All errors share one JSON envelope: {"error": {"code": ..., "message": ...}}.
// The server shuts down gracefully on SIGINT/SIGTERM or context
// cancellation, draining in-flight requests within the configured timeout.
package server
