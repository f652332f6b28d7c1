// Package logging configures the slog logger shared by the mtplates
// packages. Stdout belongs to the prompt and formatters, so every record
// goes to stderr unless a test redirects it.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	Init(DefaultConfig())
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level // Minimum log level
	JSON      bool       // Use JSON output format
	Output    io.Writer  // Output destination (default: stderr)
	AddSource bool       // Include source file and line number
}

// DefaultConfig reports skipped entries and load problems only.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Output: os.Stderr,
	}
}

// DebugConfig is used for --debug: every store operation as JSON with source.
func DebugConfig() Config {
	return Config{
		Level:     slog.LevelDebug,
		JSON:      true,
		Output:    os.Stderr,
		AddSource: true,
	}
}

// Init replaces the shared logger.
func Init(cfg Config) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	current.Store(slog.New(handler))
}

// InitDebug switches to DebugConfig.
func InitDebug() {
	Init(DebugConfig())
}

// DebugLog logs at DEBUG level.
func DebugLog(msg string, args ...any) {
	current.Load().Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	current.Load().Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	current.Load().Error(msg, args...)
}

// Structured logging keys.
const (
	KeyOperation = "op"
	KeyError     = "error"
	KeyCity      = "city"
	KeyCounty    = "county"
	KeyPrefix    = "prefix"
	KeyPath      = "path"
	KeyLine      = "line"
	KeyBackend   = "backend"
	KeyCount     = "count"
)

// LogOperation records a completed store operation at DEBUG level.
func LogOperation(op string, args ...any) {
	current.Load().Debug("operation", append([]any{KeyOperation, op}, args...)...)
}
