// Package logging configures structured logging for semcore.
//
// The kernel is an in-process computation library, so logging goes to a
// caller-supplied writer (stderr by default) as JSON via log/slog. There is
// no file rotation; hosts that want files pass their own writer.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Writer is the destination for log output. Nil means stderr.
	Writer io.Writer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level: "info",
	}
}

// DebugConfig returns configuration for debug mode.
func DebugConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	return cfg
}

// Setup creates a JSON-structured logger from the given configuration.
func Setup(cfg Config) *slog.Logger {
	output := cfg.Writer
	if output == nil {
		output = os.Stderr
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	return slog.New(handler)
}

// SetupDefault sets up logging with default configuration and installs it
// as the process default logger.
func SetupDefault() *slog.Logger {
	logger := Setup(DefaultConfig())
	slog.SetDefault(logger)
	return logger
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromString converts string level to slog.Level.
func LevelFromString(level string) slog.Level {
	return parseLevel(level)
}
