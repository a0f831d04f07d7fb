// Package logging builds the slog loggers used by the world and the examples.
// The level is controlled by the KYNEX_LOG_LEVEL environment variable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv is the environment variable read by LevelFromEnv
const LevelEnv = "KYNEX_LOG_LEVEL"

// Format selects the slog handler
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// New creates a logger writing to w at the given level
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// NewFromEnv creates a text logger on stderr with the level from KYNEX_LOG_LEVEL
func NewFromEnv() *slog.Logger {
	return New(os.Stderr, LevelFromEnv(), FormatText)
}

// LevelFromEnv parses KYNEX_LOG_LEVEL. Valid levels: DEBUG, INFO, WARN, ERROR.
// Defaults to INFO.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// ParseLevel maps a level name to a slog level, defaulting to INFO
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
