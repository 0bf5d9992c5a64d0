// Package health provides liveness and readiness probes for Callisto.
//
// The Checker runs named component checks concurrently with a per-check
// timeout. The server registers one check per backing store, so /ready
// reports degraded when the template library or audit storage cannot be
// reached while /health stays a plain process-is-alive probe.
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("library", func(ctx context.Context) error {
//	    return store.Ping(ctx)
//	})
//	health.Register(mux, checker, version, commit, buildTime)
package health
