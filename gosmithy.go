// Package gosmithy loads Smithy IDL files into a semantic model.
package gosmithy

import (
	"errors"
	"log/slog"
)

// ErrNoSources is returned when Load is called with no sources.
var ErrNoSources = errors.New("no model sources provided")

// LevelTrace is a custom log level more verbose than Debug. Use for
// per-item iteration logging (tokens, trait applications, references).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger     *slog.Logger
	searchPath bool
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) { c.logger = logger }
}

// WithSearchPath appends the directories named by the GOSMITHY_PATH
// environment variable as fallback sources.
func WithSearchPath() LoadOption {
	return func(c *loadConfig) { c.searchPath = true }
}
