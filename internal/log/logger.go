package log

import (
	"io"
	"log/slog"
	"os"
)

// Verbosity levels
const (
	LevelQuiet = iota // Default: only errors and warnings
	LevelInfo         // -v: cache hits, request outcomes, counts
	LevelDebug        // -vv: API calls, cache operations, header values
)

var (
	verbosity int
	logger    *slog.Logger
)

// Initialize sets up the global logger with the specified verbosity level
func Initialize(level int, w io.Writer) {
	verbosity = level

	var slogLevel slog.Level
	switch {
	case level >= LevelDebug:
		slogLevel = slog.LevelDebug
	case level >= LevelInfo:
		slogLevel = slog.LevelInfo
	default:
		slogLevel = slog.LevelWarn
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel,
	})
	logger = slog.New(handler)
}

// Info logs at info level (-v)
func Info(msg string, args ...any) {
	if verbosity >= LevelInfo {
		logger.Info(msg, args...)
	}
}

// Debug logs at debug level (-vv)
func Debug(msg string, args ...any) {
	if verbosity >= LevelDebug {
		logger.Debug(msg, args...)
	}
}

// Warn logs at warn level (always visible)
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs at error level (always visible)
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

func init() {
	// Default initialization with quiet mode to stderr
	verbosity = LevelQuiet
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}
