// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     logging
// Description: Factory functions for component loggers backed by zerolog
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	rootMu sync.RWMutex
	root   = newRoot(DefaultLoggerConfig())
)

// LoggerConfig holds configuration for the process-wide log sink
type LoggerConfig struct {
	// Log level (debug, info, warn, error)
	Level string

	// Output format: "json" or "console"
	Format string

	// Output writer (default: stderr)
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

// Configure replaces the process-wide sink. Loggers created before the call
// pick up the new sink on their next write.
func Configure(cfg LoggerConfig) {
	rootMu.Lock()
	defer rootMu.Unlock()
	root = newRoot(cfg)
}

func newRoot(cfg LoggerConfig) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" || cfg.Format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: out != os.Stderr && out != os.Stdout}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level).zerolog()).
		With().Timestamp().Logger()
}

func current() zerolog.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// Logger is a named component logger with a key/value API
type Logger struct {
	name  string
	level *Level
	nop   bool
}

// New creates a logger for the named component
func New(name string) *Logger {
	return &Logger{name: name}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{name: "nop", nop: true}
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a new logger with a minimum level override
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{name: l.name, level: &level, nop: l.nop}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues)
}

func (l *Logger) log(level Level, msg string, keysAndValues []interface{}) {
	if l == nil || l.nop {
		return
	}
	if l.level != nil && level < *l.level {
		return
	}

	zl := current()
	event := zl.WithLevel(level.zerolog())
	if event == nil {
		return
	}
	event.Str("logger", l.name).Fields(toFields(keysAndValues...)).Msg(msg)
}

// toFields converts key-value pairs to a field map. Non-string keys and a
// trailing orphan value are dropped.
func toFields(keysAndValues ...interface{}) map[string]interface{} {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr && err != nil {
			fields[key] = err.Error()
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
