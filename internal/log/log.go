// Package log provides a thread-safe singleton slog.Logger for the
// seedmixer CLI, configured from the SEEDMIXER_LOG_LEVEL environment
// variable.
package log

import (
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var logger *slog.Logger
var loggerMutex sync.Mutex

// Log returns the process-wide logger, creating it on first use.
func Log() *slog.Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logger != nil {
		return logger
	}

	opts := &slog.HandlerOptions{Level: level()}
	logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	return logger
}

// level reads SEEDMIXER_LOG_LEVEL and returns the corresponding slog
// level, defaulting to Warn for unset or unrecognized values.
func level() slog.Level {
	switch strings.ToUpper(os.Getenv("SEEDMIXER_LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Fatal logs msg and exits with status 1.
func Fatal(msg string) {
	log.Fatal(msg)
}

// FatalF formats and logs a message, then exits with status 1.
func FatalF(format string, args ...any) {
	log.Fatalf(format, args...)
}
