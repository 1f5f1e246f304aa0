// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// TestOperationError_Error tests the error message format
func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "with path",
			err:  &OperationError{Operation: "add", Path: "ip/address", Message: "already have such address"},
			want: "routeros: add ip/address failed: already have such address",
		},
		{
			name: "without path",
			err:  &OperationError{Operation: "login", Message: "authentication failed", InternalMsg: "invalid user name or password (6)"},
			want: "routeros: login failed: authentication failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestOperationError_DetailedError tests that internal details only appear in DetailedError
func TestOperationError_DetailedError(t *testing.T) {
	err := &OperationError{
		Operation:   "connect",
		Message:     "failed to establish connection",
		InternalMsg: "dial tcp 10.0.0.1:8728: connect: connection refused",
	}
	if strings.Contains(err.Error(), "10.0.0.1") {
		t.Errorf("Error() leaks internal details: %s", err.Error())
	}
	if !strings.Contains(err.DetailedError(), "(internal: dial tcp 10.0.0.1:8728") {
		t.Errorf("DetailedError() = %s", err.DetailedError())
	}

	plain := &OperationError{Operation: "set", Message: "x"}
	if plain.DetailedError() != plain.Error() {
		t.Errorf("DetailedError() without internal message = %q", plain.DetailedError())
	}
}

// TestErrorUnwrapping tests errors.Is and errors.As through the wrapper types
func TestErrorUnwrapping(t *testing.T) {
	trap := &TrapError{Message: "failure"}

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "operation wraps sentinel", err: &OperationError{Operation: "remove", Err: ErrNoIDField}, target: ErrNoIDField},
		{name: "operation wraps trap", err: &OperationError{Operation: "add", Err: trap}, target: trap},
		{name: "transport wraps io", err: &TransportError{Op: "read", Err: io.EOF}, target: io.EOF},
		{name: "field write wraps decode", err: &FieldWriteError{Field: "mtu", Err: &OperationError{Err: io.ErrUnexpectedEOF}}, target: io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
		})
	}
}

func TestTrapError(t *testing.T) {
	tests := []struct {
		err  *TrapError
		want string
	}{
		{&TrapError{Message: "no such item"}, "routeros: trap: no such item"},
		{&TrapError{Message: "interrupted", Category: "2"}, "routeros: trap (category 2): interrupted"},
		{&TrapError{Message: "session terminated", Fatal: true}, "routeros: fatal: session terminated"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	de := &DecodeError{Type: "uint16", Value: "70000"}
	if got := de.Error(); got != `cannot decode "70000" as uint16` {
		t.Errorf("DecodeError.Error() = %q", got)
	}

	fw := &FieldWriteError{Structure: "interface/bridge/port", Field: "pvid", Value: "70000", Err: de}
	if !strings.Contains(fw.Error(), "interface/bridge/port") || !strings.Contains(fw.Error(), `"70000"`) {
		t.Errorf("FieldWriteError.Error() = %q", fw.Error())
	}
	var target *DecodeError
	if !errors.As(fw, &target) || target != de {
		t.Error("FieldWriteError does not unwrap to its DecodeError")
	}

	fm := &FieldMissingError{Structure: "ip/route", Field: "bogus", Value: "1"}
	if got := fm.Error(); got != `missing ip/route: bogus value from api "1"` {
		t.Errorf("FieldMissingError.Error() = %q", got)
	}
}

func TestIsTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "direct", err: &TransportError{Op: "write", Err: io.ErrClosedPipe}, want: true},
		{name: "wrapped", err: &OperationError{Err: &TransportError{Op: "read", Err: io.EOF}}, want: true},
		{name: "trap", err: &TrapError{Message: "x"}, want: false},
		{name: "sentinel", err: ErrLoginFailed, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransportError(tt.err); got != tt.want {
				t.Errorf("IsTransportError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
