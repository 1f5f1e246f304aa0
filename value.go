// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"strconv"
	"strings"
)

// ValueFormat selects how a value is rendered.
//
// Most types render identically in both formats. Booleans are the notable
// exception: the binary API expects "true"/"false" while configuration scripts
// use "yes"/"no".
type ValueFormat int

const (
	// FormatAPI renders values for the binary API and the REST interface
	FormatAPI ValueFormat = iota

	// FormatCLI renders values for configuration scripts
	FormatCLI
)

// String returns the string representation of a ValueFormat
func (f ValueFormat) String() string {
	switch f {
	case FormatAPI:
		return "api"
	case FormatCLI:
		return "cli"
	default:
		return "format(" + strconv.Itoa(int(f)) + ")"
	}
}

// Codec converts between wire strings and typed values.
//
// Codecs are stateless zero-size types; a field names its codec in its type
// (Field[uint16, Uint16Codec]) and instantiates it on demand. Decode is never
// called with an empty string, absence is handled by Field.
type Codec[T any] interface {
	Decode(value string) (T, error)
	Encode(value T, format ValueFormat) string
	Equal(a, b T) bool
}

// StringCodec passes strings through unchanged.
type StringCodec struct{}

func (StringCodec) Decode(value string) (string, error) { return value, nil }

func (StringCodec) Encode(value string, _ ValueFormat) string { return value }

func (StringCodec) Equal(a, b string) bool { return a == b }

// BoolCodec accepts yes/no and true/false.
type BoolCodec struct{}

func (BoolCodec) Decode(value string) (bool, error) {
	switch value {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, &DecodeError{Type: "bool", Value: value, Err: err}
	}
	return b, nil
}

func (BoolCodec) Encode(value bool, format ValueFormat) string {
	if format == FormatCLI {
		if value {
			return "yes"
		}
		return "no"
	}
	return strconv.FormatBool(value)
}

func (BoolCodec) Equal(a, b bool) bool { return a == b }

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UintCodec decodes unsigned integers in decimal or 0x-prefixed hex notation.
type UintCodec[T unsigned] struct{}

func (UintCodec[T]) Decode(value string) (T, error) {
	digits, base := value, 10
	if strings.HasPrefix(value, "0x") {
		digits, base = value[2:], 16
	}
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, &DecodeError{Type: "unsigned integer", Value: value, Err: err}
	}
	if n > uint64(^T(0)) {
		return 0, &DecodeError{Type: "unsigned integer", Value: value, Err: strconv.ErrRange}
	}
	return T(n), nil
}

func (UintCodec[T]) Encode(value T, _ ValueFormat) string {
	return strconv.FormatUint(uint64(value), 10)
}

func (UintCodec[T]) Equal(a, b T) bool { return a == b }

// IntCodec decodes signed integers in decimal or 0x-prefixed hex notation.
type IntCodec[T signed] struct{}

func (IntCodec[T]) Decode(value string) (T, error) {
	digits, base := value, 10
	if strings.HasPrefix(value, "0x") {
		digits, base = value[2:], 16
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, &DecodeError{Type: "integer", Value: value, Err: err}
	}
	if int64(T(n)) != n {
		return 0, &DecodeError{Type: "integer", Value: value, Err: strconv.ErrRange}
	}
	return T(n), nil
}

func (IntCodec[T]) Encode(value T, _ ValueFormat) string {
	return strconv.FormatInt(int64(value), 10)
}

func (IntCodec[T]) Equal(a, b T) bool { return a == b }

// Uint64Codec is decimal only; 64-bit counters are never reported in hex.
type Uint64Codec struct{}

func (Uint64Codec) Decode(value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &DecodeError{Type: "uint64", Value: value, Err: err}
	}
	return n, nil
}

func (Uint64Codec) Encode(value uint64, _ ValueFormat) string {
	return strconv.FormatUint(value, 10)
}

func (Uint64Codec) Equal(a, b uint64) bool { return a == b }

// Commonly used integer codecs
type (
	Uint8Codec  = UintCodec[uint8]
	Uint16Codec = UintCodec[uint16]
	Uint32Codec = UintCodec[uint32]
	Int8Codec   = IntCodec[int8]
)

// Enum is implemented by the closed string value sets produced from the schema.
type Enum interface {
	~string
	IsValid() bool
}

// EnumCodec rejects tokens outside the enum's value set.
type EnumCodec[E Enum] struct{}

func (EnumCodec[E]) Decode(value string) (E, error) {
	e := E(value)
	if !e.IsValid() {
		return e, &DecodeError{Type: "enum", Value: value}
	}
	return e, nil
}

func (EnumCodec[E]) Encode(value E, _ ValueFormat) string { return string(value) }

func (EnumCodec[E]) Equal(a, b E) bool { return a == b }
