package logging

import (
	"context"
	"log/slog"
)

// FieldStep is the attribute key identifying the pipeline step a log record
// belongs to. The console handler renders it as a message prefix.
const FieldStep = "step"

type contextKey struct{}

// WithStep annotates the context with the active pipeline step name.
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, step)
}

// StepFromContext returns the step recorded on the context, if any.
func StepFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	step, _ := ctx.Value(contextKey{}).(string)
	return step
}

// WithContext returns a logger carrying the context's step attribute.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if step := StepFromContext(ctx); step != "" {
		return logger.With(slog.String(FieldStep, step))
	}
	return logger
}
