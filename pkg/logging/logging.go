// Package logging provides the package-level *slog.Logger used for debug
// output across pdfnav.
package logging

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the module-wide logger. A nil value means logging is
// disabled and Logger() hands out a discard logger.
var logger atomic.Pointer[slog.Logger]

// SetLogger configures the module-wide logger for debug output.
// Pass nil to disable logging again.
//
// SetLogger is safe for concurrent use.
//
// Enabling debug output to stderr:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger.Store(slog.New(slog.DiscardHandler))
		return
	}
	logger.Store(l)
}

// Logger returns the module-wide logger. Until SetLogger is called it
// returns a logger that discards all output.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := slog.New(slog.DiscardHandler)
	logger.Store(l)
	return l
}
