// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestDefaultLogger_LogLevels verifies log level filtering
func TestDefaultLogger_LogLevels(t *testing.T) {
	tests := []struct {
		name          string
		level         LogLevel
		logFunc       func(Logger)
		expectMessage bool
	}{
		{
			name:          "debug level logs debug",
			level:         LogLevelDebug,
			logFunc:       func(l Logger) { l.Debug(context.Background(), "trap received") },
			expectMessage: true,
		},
		{
			name:          "info level filters debug",
			level:         LogLevelInfo,
			logFunc:       func(l Logger) { l.Debug(context.Background(), "trap received") },
			expectMessage: false,
		},
		{
			name:          "warn level logs error",
			level:         LogLevelWarn,
			logFunc:       func(l Logger) { l.Error(context.Background(), "trap received") },
			expectMessage: true,
		},
		{
			name:          "error level filters warn",
			level:         LogLevelError,
			logFunc:       func(l Logger) { l.Warn(context.Background(), "trap received") },
			expectMessage: false,
		},
		{
			name:          "none level filters error",
			level:         LogLevelNone,
			logFunc:       func(l Logger) { l.Error(context.Background(), "trap received") },
			expectMessage: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(NewDefaultLoggerTo(&buf, tt.level))

			output := buf.String()
			if tt.expectMessage && !strings.Contains(output, "trap received") {
				t.Errorf("expected log message but got: %q", output)
			}
			if !tt.expectMessage && output != "" {
				t.Errorf("expected no log message but got: %s", output)
			}
		})
	}
}

// TestDefaultLogger_Format checks the [LEVEL] message key=value layout
func TestDefaultLogger_Format(t *testing.T) {
	tests := []struct {
		name          string
		keysAndValues []any
		want          string
	}{
		{
			name:          "pairs",
			keysAndValues: []any{"path", "interface/bridge", "rows", 2},
			want:          "[WARN] list done path=interface/bridge rows=2\n",
		},
		{
			name:          "missing value",
			keysAndValues: []any{"path"},
			want:          "[WARN] list done path=<MISSING>\n",
		},
		{
			name:          "device supplied comment",
			keysAndValues: []any{"comment", "uplink\n[ERROR] forged"},
			want:          "[WARN] list done comment=uplink [ERROR] forged\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewDefaultLoggerTo(&buf, LogLevelDebug).Warn(context.Background(), "list done", tt.keysAndValues...)
			if got := buf.String(); got != tt.want {
				t.Errorf("log output = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSanitizeLogValue tests control and unicode character handling
func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "plain", input: "ether1", expected: "ether1"},
		{name: "number", input: 8728, expected: "8728"},
		{name: "newline", input: "a\nb", expected: "a b"},
		{name: "carriage return", input: "a\rb", expected: "a b"},
		{name: "tab", input: "a\tb", expected: "a b"},
		{name: "ANSI escape", input: "x\x1B[31my", expected: "x.[31my"},
		{name: "NUL", input: "a\x00b", expected: "a.b"},
		{name: "zero width space", input: "adm\u200bin", expected: "admin"},
		{name: "byte order mark", input: "\ufeffname", expected: "name"},
		{name: "right-to-left override", input: "abc\u202edef", expected: "abc def"},
		{name: "invalid UTF-8", input: "a\xffb", expected: "a.b"},
		{name: "non-latin", input: "Сервер", expected: "Сервер"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.expected {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestSanitizeLogValue_Truncation tests long value truncation
func TestSanitizeLogValue_Truncation(t *testing.T) {
	tests := []struct {
		name          string
		length        int
		wantTruncated bool
	}{
		{name: "short", length: 10},
		{name: "exact limit", length: MaxLogValueLength},
		{name: "over limit", length: MaxLogValueLength + 1, wantTruncated: true},
		{name: "far over limit", length: 10 * MaxLogValueLength, wantTruncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sanitizeLogValue(strings.Repeat("a", tt.length))
			truncated := strings.HasSuffix(result, "...[TRUNCATED]")
			if truncated != tt.wantTruncated {
				t.Errorf("truncated = %v, want %v (length %d)", truncated, tt.wantTruncated, len(result))
			}
			if truncated && len(result) != MaxLogValueLength+len("...[TRUNCATED]") {
				t.Errorf("unexpected truncated length %d", len(result))
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LogLevelDebug},
		{in: "INFO", want: LogLevelInfo},
		{in: "", want: LogLevelInfo},
		{in: " warning ", want: LogLevelWarn},
		{in: "Error", want: LogLevelError},
		{in: "off", want: LogLevelNone},
		{in: "verbose", want: LogLevelNone, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestLogLevel_String tests LogLevel string representation
func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelNone, "NONE"},
		{LogLevel(99), "UNKNOWN(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.level.String(); result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

// TestZerologLogger checks that key-value pairs become JSON fields
func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug(context.Background(), "filtered")
	logger.Info(context.Background(), "RouterOS list response", "path", "ip/address", "rows", 3)
	logger.Error(context.Background(), "odd", "key")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if entry["level"] != "info" || entry["message"] != "RouterOS list response" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["path"] != "ip/address" || entry["rows"] != float64(3) {
		t.Errorf("fields not forwarded: %v", entry)
	}

	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if entry["key"] != "<MISSING>" {
		t.Errorf("odd key not padded: %v", entry)
	}
}

func TestZerologLevel(t *testing.T) {
	tests := map[LogLevel]zerolog.Level{
		LogLevelDebug: zerolog.DebugLevel,
		LogLevelInfo:  zerolog.InfoLevel,
		LogLevelWarn:  zerolog.WarnLevel,
		LogLevelError: zerolog.ErrorLevel,
		LogLevelNone:  zerolog.Disabled,
	}
	for level, want := range tests {
		if got := zerologLevel(level); got != want {
			t.Errorf("zerologLevel(%v) = %v, want %v", level, got, want)
		}
	}
}

// TestNoOpLogger verifies that NoOpLogger satisfies Logger and never panics
func TestNoOpLogger(t *testing.T) {
	var logger Logger = &NoOpLogger{}
	for i := 0; i < 100; i++ {
		logger.Debug(context.Background(), "test message", "iteration", i)
		logger.Info(context.Background(), "test message", "iteration", i)
		logger.Warn(context.Background(), "test message", "iteration", i)
		logger.Error(context.Background(), "test message", "iteration", i)
	}
}
