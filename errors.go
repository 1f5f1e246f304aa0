// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"errors"
	"fmt"
)

// Protocol-level sentinel errors
var (
	// ErrUnsupportedWord is returned when a received word starts with a byte
	// that is not part of the API word grammar.
	ErrUnsupportedWord = errors.New("routeros: unsupported word")

	// ErrUnsupportedLength is returned when a length prefix uses a reserved bit pattern.
	ErrUnsupportedLength = errors.New("routeros: unsupported length prefix")

	// ErrLoginFailed is returned when the device does not answer the login
	// sentence with !done.
	ErrLoginFailed = errors.New("routeros: login failed")

	// ErrClientClosed is returned by operations on a client after Close().
	ErrClientClosed = errors.New("routeros: client closed")

	// ErrNoIDField is returned when an update or delete is attempted on a
	// resource whose identity field has no value.
	ErrNoIDField = errors.New("routeros: resource has no id value")
)

// NoSuchCommandPrefix is the trap message a device returns for a command path
// it does not implement. Listing such a path yields an empty result.
const NoSuchCommandPrefix = "no such command prefix"

// OperationError represents a failed backend operation with context
type OperationError struct {
	// Operation name that failed (list, add, set, remove, login)
	Operation string

	// Path is the resource path the operation targeted
	Path string

	// Human-readable error message
	Message string

	// InternalMsg contains detailed error information for internal logging
	InternalMsg string

	// Err is the underlying cause
	Err error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("routeros: %s failed: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("routeros: %s %s failed: %s", e.Operation, e.Path, e.Message)
}

// DetailedError returns the full error message including internal details
//
// This should only be used in secure logging contexts where sensitive information
// disclosure is acceptable (e.g., server-side logs, debug output).
func (e *OperationError) DetailedError() string {
	if e.InternalMsg == "" {
		return e.Error()
	}
	return fmt.Sprintf("%s (internal: %s)", e.Error(), e.InternalMsg)
}

// Unwrap returns the underlying cause
func (e *OperationError) Unwrap() error {
	return e.Err
}

// DecodeError reports a wire value that could not be converted into its Go type
type DecodeError struct {
	// Type is a short name of the target type (e.g. "uint16", "duration")
	Type string

	// Value is the offending wire string
	Value string

	// Err is the parser error, if any
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot decode %q as %s", e.Value, e.Type)
	}
	return fmt.Sprintf("cannot decode %q as %s: %v", e.Value, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FieldWriteError tags a decode failure with the resource and field it happened on
type FieldWriteError struct {
	Structure string
	Field     string
	Value     string
	Err       error
}

func (e *FieldWriteError) Error() string {
	return fmt.Sprintf("error on field on %s: %s value %q: %v", e.Structure, e.Field, e.Value, e.Err)
}

func (e *FieldWriteError) Unwrap() error {
	return e.Err
}

// FieldMissingError reports an attribute key that the resource type does not declare
type FieldMissingError struct {
	Structure string
	Field     string
	Value     string
}

func (e *FieldMissingError) Error() string {
	return fmt.Sprintf("missing %s: %s value from api %q", e.Structure, e.Field, e.Value)
}

// TrapError is a !trap or !fatal reply received from the device
type TrapError struct {
	// Message is the value of the =message= attribute
	Message string

	// Category is the value of the =category= attribute, if present
	Category string

	// Fatal is true for !fatal replies (the device closes the session)
	Fatal bool
}

func (e *TrapError) Error() string {
	kind := "trap"
	if e.Fatal {
		kind = "fatal"
	}
	if e.Category != "" {
		return fmt.Sprintf("routeros: %s (category %s): %s", kind, e.Category, e.Message)
	}
	return fmt.Sprintf("routeros: %s: %s", kind, e.Message)
}

// TransportError wraps an I/O failure on the underlying connection
type TransportError struct {
	// Op is "read" or "write"
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("routeros: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err was caused by the underlying connection
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
