// Package cli implements the rack command-line interface.
//
// Running rack with no subcommand opens the editor window. The other
// commands inspect the save directory without starting a window:
//   - list: saved racks with their size and modification time
//   - show: the modules of one saved rack
//   - path: where racks and the config file live
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level with "HH:MM:SS.ms"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
