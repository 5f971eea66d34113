package logger

import "context"

type contextKey string

const (
	loggerKey   contextKey = "tsmap.logger"
	runIDKey    contextKey = "tsmap.run_id"
	workerIDKey contextKey = "tsmap.worker"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithRunID tags the context with a workload run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run ID, or "" if none is set.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithWorker tags the context with a worker index.
func WithWorker(ctx context.Context, worker int) context.Context {
	return context.WithValue(ctx, workerIDKey, worker)
}

// WorkerFromContext returns the worker index and whether one is set.
func WorkerFromContext(ctx context.Context) (int, bool) {
	w, ok := ctx.Value(workerIDKey).(int)
	return w, ok
}

// L returns the context logger enriched with run_id and worker.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if runID := RunIDFromContext(ctx); runID != "" {
		l = l.With("run_id", runID)
	}
	if w, ok := WorkerFromContext(ctx); ok {
		l = l.With("worker", w)
	}

	return l
}
