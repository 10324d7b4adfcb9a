// Package rtlog is the process-wide logging sink every package in this
// module writes through, matching the teacher's hal.Logger() pattern: an
// atomic pointer to a *slog.Logger, defaulting to a no-op handler so the
// module stays silent unless a caller opts in via Set. Per spec.md
// §9, logging is always best-effort — nothing in this module lets a
// malformed diagnostic abort an operation.
package rtlog

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Set installs logger as the process-wide sink. Safe to call concurrently
// with Logger(); in-flight log calls may use either the old or new logger.
func Set(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	current.Store(logger)
}

// Logger returns the current process-wide logger.
func Logger() *slog.Logger {
	return current.Load()
}
