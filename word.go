// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"fmt"
	"strings"
)

// Word is one length-prefixed token of an API sentence.
//
// The concrete types are Command, Attribute, APIAttribute, Query and Reply.
// A nil Word is the zero-length sentence terminator.
type Word interface {
	fmt.Stringer
	word()
}

// Command is a "/path/verb" word.
type Command struct {
	Path string
}

// Attribute is a "=key=value" word.
type Attribute struct {
	Key   string
	Value string
}

// APIAttribute is a ".key=value" protocol word such as ".tag".
type APIAttribute struct {
	Key   string
	Value string
}

// QueryOp selects the comparison of a Query word.
type QueryOp int

const (
	// QueryHasValue matches rows where the key is present ("?key")
	QueryHasValue QueryOp = iota
	// QueryHasNoValue matches rows where the key is absent ("?-key")
	QueryHasNoValue
	// QueryEquals matches rows where key equals value ("?=key=value")
	QueryEquals
	// QueryLessThan matches rows where key is less than value ("?<key=value")
	QueryLessThan
	// QueryGreaterThan matches rows where key is greater than value ("?>key=value")
	QueryGreaterThan
)

// Query is a "?..." filter word.
type Query struct {
	Op    QueryOp
	Key   string
	Value string
}

// ReplyType is the kind of a "!..." reply word.
type ReplyType int

const (
	ReplyDone ReplyType = iota
	ReplyData
	ReplyTrap
	ReplyFatal
	// ReplyEmpty is sent by RouterOS 7.18 and later when a print matches no
	// rows. A "!done" still follows.
	ReplyEmpty
)

// String returns the reply word without the leading '!'
func (t ReplyType) String() string {
	switch t {
	case ReplyDone:
		return "done"
	case ReplyData:
		return "re"
	case ReplyTrap:
		return "trap"
	case ReplyEmpty:
		return "empty"
	default:
		return "fatal"
	}
}

// Reply is a "!done", "!re", "!trap", "!empty" or "!fatal" word.
type Reply struct {
	Type ReplyType
}

func (Command) word()      {}
func (Attribute) word()    {}
func (APIAttribute) word() {}
func (Query) word()        {}
func (Reply) word()        {}

func (w Command) String() string      { return "/" + w.Path }
func (w Attribute) String() string    { return "=" + w.Key + "=" + w.Value }
func (w APIAttribute) String() string { return "." + w.Key + "=" + w.Value }
func (w Reply) String() string        { return "!" + w.Type.String() }

func (w Query) String() string {
	switch w.Op {
	case QueryHasValue:
		return "?" + w.Key
	case QueryHasNoValue:
		return "?-" + w.Key
	case QueryEquals:
		return "?=" + w.Key + "=" + w.Value
	case QueryLessThan:
		return "?<" + w.Key + "=" + w.Value
	default:
		return "?>" + w.Key + "=" + w.Value
	}
}

// EncodeWord returns the payload bytes of w without length prefix.
// A nil word encodes to an empty payload.
func EncodeWord(w Word) []byte {
	if w == nil {
		return nil
	}
	return []byte(w.String())
}

// ParseWord decodes a word payload. An empty payload is the sentence
// terminator and yields a nil Word.
func ParseWord(b []byte) (Word, error) {
	if len(b) == 0 {
		return nil, nil
	}
	s := string(b)
	switch s[0] {
	case '/':
		return Command{Path: s[1:]}, nil
	case '=':
		key, value := splitKeyValue(s[1:])
		return Attribute{Key: key, Value: value}, nil
	case '.':
		key, value := splitKeyValue(s[1:])
		return APIAttribute{Key: key, Value: value}, nil
	case '!':
		switch strings.TrimSpace(s[1:]) {
		case "done":
			return Reply{Type: ReplyDone}, nil
		case "re":
			return Reply{Type: ReplyData}, nil
		case "trap":
			return Reply{Type: ReplyTrap}, nil
		case "empty":
			return Reply{Type: ReplyEmpty}, nil
		default:
			return Reply{Type: ReplyFatal}, nil
		}
	case '?':
		return parseQuery(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedWord, s)
	}
}

func parseQuery(s string) (Word, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedWord, s)
	}
	var op QueryOp
	switch s[1] {
	case '-':
		return Query{Op: QueryHasNoValue, Key: s[2:]}, nil
	case '=':
		op = QueryEquals
	case '<':
		op = QueryLessThan
	case '>':
		op = QueryGreaterThan
	default:
		key, value, found := strings.Cut(s[1:], "=")
		if !found {
			return Query{Op: QueryHasValue, Key: key}, nil
		}
		return Query{Op: QueryEquals, Key: key, Value: value}, nil
	}
	key, value := splitKeyValue(s[2:])
	return Query{Op: op, Key: key, Value: value}, nil
}

// splitKeyValue splits "key=value" at the first '='. The value is empty when
// there is no '='.
func splitKeyValue(s string) (string, string) {
	key, value, _ := strings.Cut(s, "=")
	return key, value
}
