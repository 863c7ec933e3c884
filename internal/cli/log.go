package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger: timestamped to hundredths of a second so
// resolve/fetch stage lines read as a timeline, filtered at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey keeps this package's context keys from colliding with other
// packages'.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches the logger to the context; every command retrieves it
// from there rather than from a global.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default() so a
// command run outside the usual setup still logs somewhere.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
