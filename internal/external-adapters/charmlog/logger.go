// Package charmlog implements the domain Logger on top of charmbracelet/log.
package charmlog

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ochairo/unipkg/internal/domain/interfaces"
)

// LevelEnvVar overrides the configured log level
const LevelEnvVar = "UNIPKG_LOG_LEVEL"

// Logger is a wrapper around charmbracelet/log.Logger
type Logger struct {
	l *log.Logger
}

// New creates a logger writing to w at the given level
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "unipkg",
	})
	return &Logger{l: l}
}

// ParseLevel maps a level name to a charmbracelet level, defaulting to info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLogLevel sets the log level from a string
func (c *Logger) SetLogLevel(level string) {
	c.l.SetLevel(ParseLevel(level))
	c.l.Debug("log level set", "level", level)
}

// ConfigureFromEnv applies UNIPKG_LOG_LEVEL when set
func (c *Logger) ConfigureFromEnv() {
	if level := os.Getenv(LevelEnvVar); level != "" {
		c.SetLogLevel(level)
	}
}

// Debug logs a debug message
func (c *Logger) Debug(msg string, fields ...interfaces.Field) {
	c.l.Debug(msg, interfaces.KeyVals(fields)...)
}

// Info logs an info message
func (c *Logger) Info(msg string, fields ...interfaces.Field) {
	c.l.Info(msg, interfaces.KeyVals(fields)...)
}

// Warn logs a warning message
func (c *Logger) Warn(msg string, fields ...interfaces.Field) {
	c.l.Warn(msg, interfaces.KeyVals(fields)...)
}

// Error logs an error message
func (c *Logger) Error(msg string, fields ...interfaces.Field) {
	c.l.Error(msg, interfaces.KeyVals(fields)...)
}

// With returns a child logger carrying fields
func (c *Logger) With(fields ...interfaces.Field) interfaces.Logger {
	return &Logger{l: c.l.With(interfaces.KeyVals(fields)...)}
}
