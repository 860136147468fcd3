// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ferdiebergado/devlink/internal/config"
)

const envProduction = "production"

// SetupLogger installs and returns the default logger for the app environment.
// Production writes JSON; every other environment writes text. Debug level
// also records the source location.
func SetupLogger(cfg *config.App, out io.Writer) *slog.Logger {
	level := ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	switch cfg.Env {
	case envProduction:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler).With(slog.String("app", "devlink"), slog.String("env", cfg.Env))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a level name such as "debug" or "WARN+1" to its slog level.
// WARNING is an alias of WARN. Unknown names fall back to INFO.
func ParseLevel(name string) slog.Level {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "warning") {
		return slog.LevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
