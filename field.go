// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"net"
	"net/netip"
	"time"
)

// FieldAccessor is the type-erased view of a Field used by backends and the
// collection engine.
type FieldAccessor interface {
	// ModifiedValue returns the encoded current value and true when it differs
	// from the value last received from the backend.
	ModifiedValue(format ValueFormat) (string, bool)

	// APIValue returns the encoded current value, or "" when absent.
	APIValue(format ValueFormat) string

	// SetFromAPI replaces the remembered original and re-derives the value.
	SetFromAPI(value string) error

	// OriginalValue returns the string last received from the backend.
	OriginalValue() string

	Clear()
	Reset() error
	HasValue() bool
}

// Field is a typed value cell that remembers the wire string it was loaded
// from, so that only changed fields are written back.
//
// The zero value is an empty, unmodified cell.
type Field[T any, C Codec[T]] struct {
	original string
	value    T
	set      bool
}

// NewField returns a cell holding v with no original, so it reports modified.
func NewField[T any, C Codec[T]](v T) Field[T, C] {
	return Field[T, C]{value: v, set: true}
}

// Get returns the current value and whether one is present.
func (f *Field[T, C]) Get() (T, bool) {
	return f.value, f.set
}

// Value returns the current value or the zero value when absent.
func (f *Field[T, C]) Value() T {
	return f.value
}

func (f *Field[T, C]) Set(v T) {
	f.value = v
	f.set = true
}

func (f *Field[T, C]) Clear() {
	var zero T
	f.value = zero
	f.set = false
}

func (f *Field[T, C]) HasValue() bool {
	return f.set
}

func (f *Field[T, C]) OriginalValue() string {
	return f.original
}

func (f *Field[T, C]) SetFromAPI(value string) error {
	f.original = value
	return f.Reset()
}

// Reset discards local changes and re-derives the value from the original.
func (f *Field[T, C]) Reset() error {
	if f.original == "" {
		f.Clear()
		return nil
	}
	var c C
	v, err := c.Decode(f.original)
	if err != nil {
		f.Clear()
		return err
	}
	f.Set(v)
	return nil
}

func (f *Field[T, C]) decodedOriginal() (T, bool) {
	var zero T
	if f.original == "" {
		return zero, false
	}
	var c C
	v, err := c.Decode(f.original)
	if err != nil {
		return zero, false
	}
	return v, true
}

func (f *Field[T, C]) ModifiedValue(format ValueFormat) (string, bool) {
	var c C
	orig, hadOrig := f.decodedOriginal()
	switch {
	case !hadOrig && !f.set:
		return "", false
	case hadOrig && f.set && c.Equal(orig, f.value):
		return "", false
	case !f.set:
		// Cleared after being loaded; an empty value unsets it on the device.
		return "", true
	default:
		return c.Encode(f.value, format), true
	}
}

func (f *Field[T, C]) APIValue(format ValueFormat) string {
	if !f.set {
		return ""
	}
	var c C
	return c.Encode(f.value, format)
}

func (f *Field[T, C]) String() string {
	return f.APIValue(FormatAPI)
}

// Common field types
type (
	StringField        = Field[string, StringCodec]
	BoolField          = Field[bool, BoolCodec]
	Uint8Field         = Field[uint8, Uint8Codec]
	Uint16Field        = Field[uint16, Uint16Codec]
	Uint32Field        = Field[uint32, Uint32Codec]
	Uint64Field        = Field[uint64, Uint64Codec]
	Int8Field          = Field[int8, Int8Codec]
	DurationField      = Field[time.Duration, DurationCodec]
	AddrField          = Field[netip.Addr, AddrCodec]
	PrefixField        = Field[netip.Prefix, PrefixCodec]
	MACField           = Field[net.HardwareAddr, MACCodec]
	IPOrInterfaceField = Field[IPOrInterface, IPOrInterfaceCodec]
	Uint16SetField     = Field[Set[uint16], SetCodec[uint16, Uint16Codec]]
	StringSetField     = Field[Set[string], SetCodec[string, StringCodec]]
	Uint16RangeField   = Field[Range[uint16], RangeCodec[uint16, Uint16Codec]]
	AutoUint16Field    = Field[Auto[uint16], AutoCodec[uint16, Uint16Codec]]
)
