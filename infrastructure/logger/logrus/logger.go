// ABOUTME: Logger implementation backed by sirupsen/logrus
// ABOUTME: Maps structured field maps onto logrus entries with level and format options

package logrus

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *logrus.Entry
}

// Options configures a Logger
type Options struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string

	// Format is text or json. Defaults to text.
	Format string

	// Output defaults to stdout
	Output io.Writer
}

// New creates a logger with the given options
func New(opts Options) (*Logger, error) {
	base := logrus.New()

	if opts.Output != nil {
		base.SetOutput(opts.Output)
	} else {
		base.SetOutput(os.Stdout)
	}

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	base.SetLevel(parsed)

	switch opts.Format {
	case "", "text":
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return &Logger{entry: logrus.NewEntry(base)}, nil
}

// With returns a logger that adds fields to every message
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}
