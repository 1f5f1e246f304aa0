// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
)

// MaxLogValueLength limits the length of log values to prevent log injection
// and excessive log file growth. Values longer than this are truncated.
const MaxLogValueLength = 1024

// Logger interface for pluggable logging support
//
// Implementations should use structured logging with key-value pairs.
// The go-routeros library provides three implementations:
//   - DefaultLogger: Wraps Go's standard log package with configurable log level
//   - ZerologLogger: Forwards to a zerolog.Logger
//   - NoOpLogger: Zero-overhead logging when disabled (default)
//
// Example custom logger integration:
//
//	type SlogAdapter struct {
//	    logger *slog.Logger
//	}
//
//	func (s *SlogAdapter) Debug(ctx context.Context, msg string, keysAndValues ...any) {
//	    s.logger.DebugContext(ctx, msg, keysAndValues...)
//	}
//	// ... implement other methods
//
//	client, _ := routeros.NewClient("192.168.88.1",
//	    routeros.Username("admin"),
//	    routeros.Password("secret"),
//	    routeros.WithLogger(&SlogAdapter{logger: slog.Default()}))
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// LogLevel represents the severity threshold for logging
type LogLevel int

const (
	// LogLevelDebug enables all log levels (most verbose)
	LogLevelDebug LogLevel = iota

	// LogLevelInfo enables Info, Warn, and Error logs
	LogLevelInfo

	// LogLevelWarn enables Warn and Error logs
	LogLevelWarn

	// LogLevelError enables only Error logs
	LogLevelError

	// LogLevelNone disables all logging
	LogLevelNone
)

// String returns the string representation of a LogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// ParseLogLevel converts a level name (case-insensitive) to a LogLevel
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO", "":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "NONE", "OFF":
		return LogLevelNone, nil
	default:
		return LogLevelNone, fmt.Errorf("unknown log level %q", s)
	}
}

// DefaultLogger wraps Go's standard log package with configurable log level
//
// Log output format: [LEVEL] message key1=value1 key2=value2
//
// Example:
//
//	logger := routeros.NewDefaultLogger(routeros.LogLevelDebug)
//	client, _ := routeros.NewClient("192.168.88.1",
//	    routeros.Username("admin"),
//	    routeros.WithLogger(logger))
type DefaultLogger struct {
	level LogLevel
	out   *log.Logger
}

// NewDefaultLogger creates a DefaultLogger with the specified log level
// writing through the standard logger.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level, out: log.Default()}
}

// NewDefaultLoggerTo creates a DefaultLogger writing to w without timestamps.
func NewDefaultLoggerTo(w io.Writer, level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level, out: log.New(w, "", 0)}
}

// Debug logs a debug message with structured key-value pairs
func (l *DefaultLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelDebug, msg, keysAndValues)
}

// Info logs an informational message with structured key-value pairs
func (l *DefaultLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelInfo, msg, keysAndValues)
}

// Warn logs a warning message with structured key-value pairs
func (l *DefaultLogger) Warn(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelWarn, msg, keysAndValues)
}

// Error logs an error message with structured key-value pairs
func (l *DefaultLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelError, msg, keysAndValues)
}

func (l *DefaultLogger) log(level LogLevel, msg string, keysAndValues []any) {
	if level < l.level || l.level == LogLevelNone {
		return
	}

	var b strings.Builder
	b.Grow(len(msg) + 10 + len(keysAndValues)*25)
	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(msg)

	for i := 0; i < len(keysAndValues); i += 2 {
		b.WriteString(" ")
		b.WriteString(sanitizeLogValue(keysAndValues[i]))
		b.WriteString("=")
		if i+1 < len(keysAndValues) {
			b.WriteString(sanitizeLogValue(keysAndValues[i+1]))
		} else {
			b.WriteString("<MISSING>")
		}
	}

	l.out.Println(b.String())
}

// sanitizeLogValue flattens a log value onto one printable line and caps its length.
//
// Line breaks and tabs become spaces, other control characters become '.',
// and zero-width or bidi-override runes are dropped so that a device-supplied
// value (interface comments, trap messages) cannot forge log entries.
func sanitizeLogValue(val any) string {
	str := fmt.Sprintf("%v", val)
	truncated := false
	if len(str) > MaxLogValueLength {
		str = str[:MaxLogValueLength]
		truncated = true
	}

	var b strings.Builder
	b.Grow(len(str))
	for _, r := range str {
		switch {
		case r == '\n' || r == '\r' || r == '\t' || r == '\f':
			b.WriteRune(' ')
		case r == 0x200B || r == 0x200C || r == 0x200D || r == 0xFEFF:
		case r == 0x202E:
			b.WriteRune(' ')
		case r == unicode.ReplacementChar || unicode.IsControl(r):
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	if truncated {
		b.WriteString("...[TRUNCATED]")
	}
	return b.String()
}

// ZerologLogger adapts a zerolog.Logger to the Logger interface
//
// Example:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, _ := routeros.NewClient("192.168.88.1",
//	    routeros.WithLogger(routeros.NewZerologLogger(zl)))
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// NewConsoleLogger returns a ZerologLogger with human-readable console output
// tagged with the given component name.
func NewConsoleLogger(component string, level LogLevel) *ZerologLogger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).
		Level(zerologLevel(level)).
		With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{logger: logger}
}

func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// Debug logs a debug message with structured key-value pairs
func (z *ZerologLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Debug(), msg, keysAndValues)
}

// Info logs an informational message with structured key-value pairs
func (z *ZerologLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Info(), msg, keysAndValues)
}

// Warn logs a warning message with structured key-value pairs
func (z *ZerologLogger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Warn(), msg, keysAndValues)
}

// Error logs an error message with structured key-value pairs
func (z *ZerologLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	z.emit(ctx, z.logger.Error(), msg, keysAndValues)
}

func (z *ZerologLogger) emit(ctx context.Context, event *zerolog.Event, msg string, keysAndValues []any) {
	if event == nil {
		return
	}
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	if len(keysAndValues)%2 != 0 {
		keysAndValues = append(keysAndValues, "<MISSING>")
	}
	event.Fields(keysAndValues).Msg(msg)
}

// NoOpLogger is a no-operation logger that discards all log messages
//
// This is the default logger used by go-routeros when no custom logger
// is configured.
type NoOpLogger struct{}

// Debug discards the log message
func (n *NoOpLogger) Debug(_ context.Context, _ string, _ ...any) {}

// Info discards the log message
func (n *NoOpLogger) Info(_ context.Context, _ string, _ ...any) {}

// Warn discards the log message
func (n *NoOpLogger) Warn(_ context.Context, _ string, _ ...any) {}

// Error discards the log message
func (n *NoOpLogger) Error(_ context.Context, _ string, _ ...any) {}
