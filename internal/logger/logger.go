// Package logger provides structured logging initialization for the waitlist
// service. It configures Go's built-in log/slog package based on the service's
// LoggingConfig, supporting JSON and text output on stdout or stderr. The
// service runs containerized, so logs always go to the process streams and
// collection is the platform's job.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"waitlist/internal/models"
	"waitlist/internal/version"
)

// Setup creates and configures a structured logger based on the provided
// LoggingConfig, with the build's version fields attached to every record.
func Setup(cfg models.LoggingConfig, ver version.Info) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	writer := pickWriter(cfg.Output)

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	logger := slog.New(handler).With(
		slog.String("version", ver.Version),
		slog.String("git_commit", ver.GitCommit),
		slog.String("build_date", ver.BuildDate),
	)

	return logger, nil
}

// parseLevel converts a level string to an slog.Level.
// Supported values: debug, info, warn, error (case-insensitive).
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level: %s", level)
	}
}

// pickWriter maps the output setting to a process stream. Anything other
// than "stderr" means stdout.
func pickWriter(output string) io.Writer {
	if strings.EqualFold(output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}
