// Package health provides liveness and readiness endpoints.
//
// Liveness only reports that the process is serving. Readiness runs the
// registered checks concurrently, each bounded by the checker's timeout:
//
//	checker := health.New(0)
//	checker.RegisterCheck("log_files", func(ctx context.Context) error {
//	    matches, _ := filepath.Glob(pattern)
//	    if len(matches) == 0 {
//	        return fmt.Errorf("no files match %s", pattern)
//	    }
//	    return nil
//	})
//
//	mux.Handle("/health", checker.LivenessHandler())
//	mux.Handle("/ready", checker.ReadinessHandler())
//
// A failing check turns the status into "degraded" and the readiness
// endpoint answers 503. The exporter still serves scrapes in that state.
package health
