// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building REST request bodies
// using sjson for path-based manipulation.
//
// The Body builder tracks errors internally to enable method chaining
// while providing error checking through String() or Err() methods.
//
// RouterOS attribute names contain characters that are special in sjson
// paths (".id"), so use Attr for flat attribute keys.
//
// Example:
//
//	body := routeros.Body{}.
//	    Attr("name", "bridge1").
//	    Attr("vlan-filtering", "true").
//	    Attr("comment", "uplink")
//
//	value, err := body.String()
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// escapePathKey escapes a literal object key for use as an sjson path
func escapePathKey(key string) string {
	var b strings.Builder
	for _, ch := range key {
		switch ch {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// Set sets a value at the specified sjson path and returns a new Body
//
// If an error occurs, the error is stored and returned by String() or Err().
// Once an error occurs, all subsequent operations are no-ops that preserve the error.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result}
}

// Attr sets a top-level attribute, treating key literally
func (b Body) Attr(key, value string) Body {
	return b.Set(escapePathKey(key), value)
}

// Delete removes a value at the specified sjson path and returns a new Body
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result}
}

// String returns the JSON string and any error encountered during building
//
// An empty body renders as "{}".
func (b Body) String() (string, error) {
	if b.str == "" && b.err == nil {
		return "{}", nil
	}
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Bytes returns the JSON byte slice and any error encountered during building
func (b Body) Bytes() ([]byte, error) {
	s, err := b.String()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// ResourceBody renders the modified writable fields of r as a REST body.
// With withID the identity attribute is included as well.
func ResourceBody(r Resource, withID bool) Body {
	body := Body{}
	idKey := ""
	if id, ok := IDField(r); ok {
		idKey = id.Description.Name
		if withID {
			body = body.Attr(idKey, id.Accessor.APIValue(FormatAPI))
		}
	}
	for _, attr := range ModifiedFields(r, FormatAPI) {
		if attr.Key == idKey {
			continue
		}
		body = body.Attr(attr.Key, attr.Value)
	}
	return body
}
