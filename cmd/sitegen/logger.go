package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log output formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// newLogger builds the process logger. LOG_LEVEL sets the baseline level;
// --verbose and --quiet take precedence over it.
func newLogger(w io.Writer, f *commonFlags) (*slog.Logger, error) {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(f.logFormat) {
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case logFormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, usageError("unknown log format %q (want text or json)", f.logFormat)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
