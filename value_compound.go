// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"sort"
	"strings"
)

// Set is an unordered collection of scalar values, comma-joined on the wire.
type Set[E comparable] map[E]struct{}

// NewSet returns a set holding the given elements.
func NewSet[E comparable](elems ...E) Set[E] {
	s := make(Set[E], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Add inserts e into the set.
func (s Set[E]) Add(e E) { s[e] = struct{}{} }

// Remove deletes e from the set.
func (s Set[E]) Remove(e E) { delete(s, e) }

// Contains reports whether e is in the set.
func (s Set[E]) Contains(e E) bool {
	_, ok := s[e]
	return ok
}

// Clone returns an independent copy.
func (s Set[E]) Clone() Set[E] {
	c := make(Set[E], len(s))
	for e := range s {
		c[e] = struct{}{}
	}
	return c
}

// SetCodec decodes comma separated lists using the element codec C.
type SetCodec[E comparable, C Codec[E]] struct{}

func (SetCodec[E, C]) Decode(value string) (Set[E], error) {
	var c C
	s := make(Set[E])
	for _, part := range strings.Split(value, ",") {
		e, err := c.Decode(part)
		if err != nil {
			return nil, err
		}
		s[e] = struct{}{}
	}
	return s, nil
}

// Encode joins the encoded elements in lexical order so that generated
// scripts are reproducible.
func (SetCodec[E, C]) Encode(value Set[E], format ValueFormat) string {
	var c C
	parts := make([]string, 0, len(value))
	for e := range value {
		parts = append(parts, c.Encode(e, format))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (SetCodec[E, C]) Equal(a, b Set[E]) bool {
	if len(a) != len(b) {
		return false
	}
	for e := range a {
		if _, ok := b[e]; !ok {
			return false
		}
	}
	return true
}

// Range is a closed interval, "lo-hi" on the wire or a single value when lo == hi.
type Range[E any] struct {
	Lo E
	Hi E
}

// Single returns the range holding exactly v.
func Single[E any](v E) Range[E] {
	return Range[E]{Lo: v, Hi: v}
}

// RangeCodec splits on the first '-' and decodes both ends with C.
type RangeCodec[E any, C Codec[E]] struct{}

func (RangeCodec[E, C]) Decode(value string) (Range[E], error) {
	var c C
	lo, hi, found := strings.Cut(value, "-")
	start, err := c.Decode(lo)
	if err != nil {
		return Range[E]{}, err
	}
	if !found {
		return Range[E]{Lo: start, Hi: start}, nil
	}
	end, err := c.Decode(hi)
	if err != nil {
		return Range[E]{}, err
	}
	return Range[E]{Lo: start, Hi: end}, nil
}

func (RangeCodec[E, C]) Encode(value Range[E], format ValueFormat) string {
	var c C
	if c.Equal(value.Lo, value.Hi) {
		return c.Encode(value.Lo, format)
	}
	return c.Encode(value.Lo, format) + "-" + c.Encode(value.Hi, format)
}

func (RangeCodec[E, C]) Equal(a, b Range[E]) bool {
	var c C
	return c.Equal(a.Lo, b.Lo) && c.Equal(a.Hi, b.Hi)
}

// Auto is either the keyword "auto" or an explicit value. The zero value is auto.
type Auto[E any] struct {
	value    E
	explicit bool
}

// AutoOf returns an explicit value.
func AutoOf[E any](v E) Auto[E] {
	return Auto[E]{value: v, explicit: true}
}

// Get returns the explicit value and true, or false when auto.
func (a Auto[E]) Get() (E, bool) { return a.value, a.explicit }

// IsAuto reports whether the value is the "auto" keyword.
func (a Auto[E]) IsAuto() bool { return !a.explicit }

// AutoCodec wraps C with the "auto" keyword.
type AutoCodec[E any, C Codec[E]] struct{}

func (AutoCodec[E, C]) Decode(value string) (Auto[E], error) {
	if value == "auto" {
		return Auto[E]{}, nil
	}
	var c C
	v, err := c.Decode(value)
	if err != nil {
		return Auto[E]{}, err
	}
	return AutoOf(v), nil
}

func (AutoCodec[E, C]) Encode(value Auto[E], format ValueFormat) string {
	if !value.explicit {
		return "auto"
	}
	var c C
	return c.Encode(value.value, format)
}

func (AutoCodec[E, C]) Equal(a, b Auto[E]) bool {
	if a.explicit != b.explicit {
		return false
	}
	var c C
	return !a.explicit || c.Equal(a.value, b.value)
}

// Optional is either the keyword "none" or a value. The zero value is none.
type Optional[E any] struct {
	value   E
	present bool
}

// Some returns a present value.
func Some[E any](v E) Optional[E] {
	return Optional[E]{value: v, present: true}
}

// Get returns the value and true, or false for "none".
func (o Optional[E]) Get() (E, bool) { return o.value, o.present }

// IsNone reports whether the value is the "none" keyword.
func (o Optional[E]) IsNone() bool { return !o.present }

// OptionalCodec wraps C with the "none" keyword.
type OptionalCodec[E any, C Codec[E]] struct{}

func (OptionalCodec[E, C]) Decode(value string) (Optional[E], error) {
	if value == "none" {
		return Optional[E]{}, nil
	}
	var c C
	v, err := c.Decode(value)
	if err != nil {
		return Optional[E]{}, err
	}
	return Some(v), nil
}

func (OptionalCodec[E, C]) Encode(value Optional[E], format ValueFormat) string {
	if !value.present {
		return "none"
	}
	var c C
	return c.Encode(value.value, format)
}

func (OptionalCodec[E, C]) Equal(a, b Optional[E]) bool {
	if a.present != b.present {
		return false
	}
	var c C
	return !a.present || c.Equal(a.value, b.value)
}
