// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name to a slog level. Unknown names map to warn
// and report ok=false.
func ParseLevel(name string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

// Setup builds a text logger writing to w at the named level and installs
// it as the slog default. CLI output stays on stdout; logs go to w, which is
// stderr in production.
func Setup(levelName string, w io.Writer) *slog.Logger {
	level, ok := ParseLevel(levelName)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", levelName,
			"default_level", level.String())
	}
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything, for tests and quiet paths.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
