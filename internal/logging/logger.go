// Package logging configures the process-wide log/slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Settings selects the level, handler format and optional log file.
type Settings struct {
	Level  string
	Format string
	File   string
}

// Setup builds a logger from s, installs it as the slog default and returns
// it with a close function for the log file (a no-op when there is none).
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Log lines go to stderr so that rendered tables on stdout stay clean. When
// File is set, every line is also appended to that file.
func Setup(s Settings) (*slog.Logger, func() error, error) {
	out := io.Writer(os.Stderr)
	closeFn := func() error { return nil }

	if s.File != "" {
		f, err := openLogFile(s.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
		closeFn = f.Close
	}

	logger := New(out, s.Level, s.Format)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// New returns a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// openLogFile opens or creates the log file, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
