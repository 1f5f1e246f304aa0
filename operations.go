// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// MaxPathLength is the maximum accepted length of a resource path
const MaxPathLength = 256

// validatePath validates a resource path before it is put on the wire
//
// Checks:
//   - Path is not empty and has no leading or trailing '/'
//   - Path length does not exceed MaxPathLength
//   - Path contains no whitespace, control characters or empty segments
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("path exceeds maximum length of %d characters: %s", MaxPathLength, truncatePath(path))
	}
	if strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return fmt.Errorf("path must not start or end with '/': %s", path)
	}
	if strings.Contains(path, "//") {
		return fmt.Errorf("path contains an empty segment: %s", path)
	}
	for i := 0; i < len(path); i++ {
		if path[i] <= ' ' || path[i] == 0x7F {
			return fmt.Errorf("path contains invalid character at position %d", i)
		}
	}
	return nil
}

// truncatePath truncates a path for error messages
func truncatePath(path string) string {
	if len(path) <= 100 {
		return path
	}
	return path[:100] + "..."
}

// AttributeCollector accumulates one reply sentence at a time.
//
// Every "!re" or "!done" reply closes the sentence collected so far: a
// resource sentence is emitted as a row, a trap sentence is turned into an
// error unless the device merely lacks the command path. An "!empty" reply
// closes the sentence without opening a row.
type AttributeCollector struct {
	newResource func() Resource
	path        string

	current Resource
	trap    map[string]string
	rows    []Resource
}

// NewAttributeCollector returns a collector producing rows from newResource.
func NewAttributeCollector(path string, newResource func() Resource) *AttributeCollector {
	return &AttributeCollector{path: path, newResource: newResource}
}

// Word consumes one reply word. It is meant to be used as a Conn.Talk callback.
func (a *AttributeCollector) Word(w Word) error {
	switch w := w.(type) {
	case Attribute:
		switch {
		case a.current != nil:
			return SetFromAPI(a.current, a.path, w.Key, w.Value)
		case a.trap != nil:
			a.trap[w.Key] = w.Value
		}
		return nil
	case Reply:
		err := a.flush()
		switch w.Type {
		case ReplyData, ReplyDone:
			a.current = a.newResource()
		case ReplyTrap, ReplyFatal:
			a.trap = map[string]string{}
		}
		return err
	default:
		return nil
	}
}

// flush closes the sentence collected so far.
func (a *AttributeCollector) flush() error {
	current, trap := a.current, a.trap
	a.current, a.trap = nil, nil

	if current != nil {
		a.rows = append(a.rows, current)
	}
	if trap != nil {
		message := trap["message"]
		if message == NoSuchCommandPrefix {
			return nil
		}
		return &TrapError{Message: message, Category: trap["category"]}
	}
	return nil
}

// Rows returns the completed rows.
//
// The instance opened by the final "!done" carries no attributes and is
// not part of the result.
func (a *AttributeCollector) Rows() []Resource {
	return a.rows
}

// listSentence builds "<path>/print".
func listSentence(path string) []Word {
	return []Word{Command{Path: path + "/print"}}
}

// addSentence builds "<path>/add" with every modified field.
func addSentence(r Resource) []Word {
	words := []Word{Command{Path: r.ResourcePath() + "/add"}}
	for _, attr := range ModifiedFields(r, FormatAPI) {
		words = append(words, Attribute{Key: attr.Key, Value: attr.Value})
	}
	return words
}

// setSentence builds "<path>/set" with the id (for list resources) and every
// modified field.
func setSentence(r Resource) []Word {
	words := []Word{Command{Path: r.ResourcePath() + "/set"}}
	idKey := ""
	if id, ok := IDField(r); ok {
		idKey = id.Description.Name
		words = append(words, Attribute{Key: idKey, Value: id.Accessor.APIValue(FormatAPI)})
	}
	for _, attr := range ModifiedFields(r, FormatAPI) {
		if attr.Key == idKey {
			continue
		}
		words = append(words, Attribute{Key: attr.Key, Value: attr.Value})
	}
	return words
}

// removeSentence builds "<path>/remove" with the id.
func removeSentence(r Resource) ([]Word, error) {
	id, ok := IDField(r)
	if !ok {
		return nil, ErrNoIDField
	}
	return []Word{
		Command{Path: r.ResourcePath() + "/remove"},
		Attribute{Key: id.Description.Name, Value: id.Accessor.APIValue(FormatAPI)},
	}, nil
}

// List implements Backend by sending "<path>/print"
//
// Paths the device does not know ("no such command prefix") yield an empty
// list. Row decode errors are collected; the rows that decoded are still
// returned alongside the aggregate error.
func (c *Client) List(ctx context.Context, newResource func() Resource) ([]Resource, error) {
	path := newResource().ResourcePath()
	if err := validatePath(path); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	collector := NewAttributeCollector(path, newResource)
	err := c.withConn(ctx, func(ctx context.Context, conn *Conn) error {
		return conn.Talk(ctx, listSentence(path), collector.Word)
	})
	rows := collector.Rows()

	if err != nil {
		c.logger.Error(ctx, "RouterOS list failed",
			"target", c.Target,
			"path", path,
			"rows", len(rows),
			"errors", len(multierr.Errors(err)),
			"error", err.Error())
		return rows, err
	}

	c.logger.Debug(ctx, "RouterOS list response",
		"target", c.Target,
		"path", path,
		"rows", len(rows))
	return rows, nil
}

// talkWrite sends a write sentence and turns a trap reply into an error
func (c *Client) talkWrite(ctx context.Context, op, path string, sentence []Word) error {
	if err := validatePath(path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err := c.withConn(ctx, func(ctx context.Context, conn *Conn) error {
		words, err := conn.TalkAll(ctx, sentence...)
		if err != nil {
			return err
		}
		return trapFromWords(words)
	})
	if err != nil {
		c.logger.Error(ctx, "RouterOS write failed",
			"target", c.Target,
			"operation", op,
			"path", path,
			"error", err.Error())
		return &OperationError{Operation: op, Path: path, Message: err.Error(), Err: err}
	}
	c.logger.Debug(ctx, "RouterOS write applied",
		"target", c.Target,
		"operation", op,
		"path", path,
		"attributes", len(sentence)-1)
	return nil
}

// Add implements Backend by sending "<path>/add"
func (c *Client) Add(ctx context.Context, r Resource) error {
	return c.talkWrite(ctx, "add", r.ResourcePath(), addSentence(r))
}

// Update implements Backend by sending "<path>/set" with the id attribute
func (c *Client) Update(ctx context.Context, r Resource) error {
	if _, ok := IDField(r); !ok {
		return &OperationError{Operation: "set", Path: r.ResourcePath(), Message: ErrNoIDField.Error(), Err: ErrNoIDField}
	}
	return c.talkWrite(ctx, "set", r.ResourcePath(), setSentence(r))
}

// Set implements Backend for single resources by sending "<path>/set"
func (c *Client) Set(ctx context.Context, r Resource) error {
	return c.talkWrite(ctx, "set", r.ResourcePath(), setSentence(r))
}

// Delete implements Backend by sending "<path>/remove"
func (c *Client) Delete(ctx context.Context, r Resource) error {
	sentence, err := removeSentence(r)
	if err != nil {
		return &OperationError{Operation: "remove", Path: r.ResourcePath(), Message: err.Error(), Err: err}
	}
	return c.talkWrite(ctx, "remove", r.ResourcePath(), sentence)
}
