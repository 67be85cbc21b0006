// Package logging provides the zerolog-backed implementation of the
// schemactl Logger interface used by the commands.
package logging

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/farmactiva/schemactl"
)

// Logger adapts zerolog to the schemactl.Logger interface.
type Logger struct {
	logger zerolog.Logger
}

// New creates a Logger writing JSON lines to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{
		logger: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Debug implements the schemactl.Logger interface.
func (l *Logger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	withFields(l.logger.Debug(), keysAndValues).Msg(msg)
}

// Info implements the schemactl.Logger interface.
func (l *Logger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	withFields(l.logger.Info(), keysAndValues).Msg(msg)
}

// Error implements the schemactl.Logger interface.
func (l *Logger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	withFields(l.logger.Error(), keysAndValues).Msg(msg)
}

// withFields attaches alternating key-value pairs to the event. A
// trailing key without a value is logged under "extra".
func withFields(event *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	if len(keysAndValues)%2 != 0 {
		event = event.Interface("extra", keysAndValues[len(keysAndValues)-1])
	}
	return event
}

// Nop is a Logger that discards everything. Useful in tests.
type Nop struct{}

// Debug implements the schemactl.Logger interface.
func (Nop) Debug(ctx context.Context, msg string, keysAndValues ...any) {}

// Info implements the schemactl.Logger interface.
func (Nop) Info(ctx context.Context, msg string, keysAndValues ...any) {}

// Error implements the schemactl.Logger interface.
func (Nop) Error(ctx context.Context, msg string, keysAndValues ...any) {}

var (
	_ schemactl.Logger = (*Logger)(nil)
	_ schemactl.Logger = Nop{}
)
