// Package middleware provides the HTTP middleware chain for the API
// server: request IDs, structured request logging, panic recovery, and
// per-route metrics.
package middleware
