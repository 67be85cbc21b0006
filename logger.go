package schemactl

import "context"

// Logger is the optional structured logger threaded through configs.
// Keys and values alternate in keysAndValues, e.g.
// logger.Info(ctx, "step applied", "step", step.Name).
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}
