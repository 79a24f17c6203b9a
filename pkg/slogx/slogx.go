// Package slogx bootstraps structured logging for the SDK and its tools.
// The SDK is a library, so nothing here touches the process-wide default
// logger: New hands back a configured *slog.Logger for the caller to pass
// into sessionx.Config, and the context helpers carry a request-scoped
// logger into the SDK's core calls.
package slogx

import (
	"log/slog"
	"os"
	"strings"
)

// DefaultService is the service attribute used when Config.Service is empty.
const DefaultService = "sessionkit"

// Config controls handler construction. The zero value means JSON at info
// level under the default service name.
type Config struct {
	Service string // service attribute on every record (default: sessionkit)
	Env     string // deployment environment attribute, omitted when empty
	Level   string // debug, info, warn, error (default: info)
	Format  string // json or text (default: json)
}

// New returns a configured *slog.Logger. Records go to stderr so a tool
// printing its result on stdout stays pipeable.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	service := cfg.Service
	if service == "" {
		service = DefaultService
	}
	logger := slog.New(handler).With("service", service)
	if cfg.Env != "" {
		logger = logger.With("env", cfg.Env)
	}
	return logger
}

// parseLevel maps a string to slog.Level, defaulting to info.
func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
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
