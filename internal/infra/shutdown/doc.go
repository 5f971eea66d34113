// Package shutdown turns termination signals into context cancellation.
//
// A long workload run watches SIGINT and SIGTERM; the first signal cancels
// the run context so workers stop at their next operation, and registered
// hooks run once in reverse order under a timeout.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.Watch(context.Background())
//	defer stop()
package shutdown
