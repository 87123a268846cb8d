package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, err := newLogger(&buf, &commonFlags{logFormat: logFormatJSON})
		if err != nil {
			t.Fatal(err)
		}
		logger.Warn("page skipped", "path", "blog.html")
		if !strings.Contains(buf.String(), `"msg":"page skipped"`) {
			t.Errorf("expected JSON record, got %q", buf.String())
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		logger, err := newLogger(&bytes.Buffer{}, &commonFlags{verbose: true})
		if err != nil {
			t.Fatal(err)
		}
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug should be enabled with --verbose")
		}
	})

	t.Run("quiet hides warnings", func(t *testing.T) {
		t.Parallel()

		logger, err := newLogger(&bytes.Buffer{}, &commonFlags{quiet: true})
		if err != nil {
			t.Fatal(err)
		}
		if logger.Enabled(context.Background(), slog.LevelWarn) {
			t.Error("warn should be disabled with --quiet")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := newLogger(&bytes.Buffer{}, &commonFlags{logFormat: "xml"})
		if !errors.Is(err, ErrUsage) {
			t.Errorf("newLogger() error = %v, want ErrUsage", err)
		}
	})
}
