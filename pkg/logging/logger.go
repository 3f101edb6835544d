// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()

	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Component names passed to NewLogger.
const (
	ComponentPipeline = "pipeline"
	ComponentPool     = "worker-pool"
	ComponentClient   = "reference-client"
	ComponentDetail   = "detail-source"
	ComponentReport   = "report"
	ComponentCLI      = "population-report"
)

// ValidLevel reports whether s names a supported level.
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache operations (hit/miss, key, TTL)
//   - Conditional requests and ETags
//   - Cities whose detail record is missing (population defaults to 0)
//
// Info: Normal operation events
//   - Run finished (records, failures, elapsed)
//   - Requests that succeeded after a retry
//
// Warn: Warning conditions that don't prevent a report
//   - Cities dropped because their detail lookup failed
//   - Cities dropped because their province key is unknown
//   - Rate limit throttling, retry attempts, cache errors
//
// Error: Error conditions requiring attention
//   - Aborted runs (reference data unavailable, interrupted wait)
//   - Report sink failures
//   - Exhausted retries, critical rate limit blocks
//
// Context Fields:
//   - component: emitting package (see Component constants)
//   - province, city: the city a diagnostic is about
//   - state: pipeline state at the time of the event
//   - endpoint, status, error_class: reference API requests
//   - remaining: current rate limit budget
//   - etag, ttl: cache entries
