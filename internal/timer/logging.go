// Purpose: Build the slog logger for an invocation.
// Exports: NewLogger.
// Role: Ambient diagnostics; stdout stays reserved for block output.
// Invariants: Logs never go to stdout; the returned Closer is always safe to call.
// Notes: With no log file configured, records go to stderr.
package timer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger logs at debug level to log_file when one is configured (flag first, then the
// log_file environment variable). Otherwise it writes warnings to stderr, or everything
// with --verbose.
func NewLogger(opts GlobalOptions, lookup func(string) (string, bool)) (*slog.Logger, io.Closer, error) {
	path := opts.LogFile
	if path == "" {
		path, _ = lookup("log_file")
	}

	if path == "" {
		level := slog.LevelWarn
		if opts.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return logger, nopCloser{}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger.With("pid", os.Getpid()), file, nil
}
