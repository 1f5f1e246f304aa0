// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ScriptBackend renders writes as a RouterOS configuration script instead of
// sending them to a device.
//
// It keeps an in-memory copy of every row it has written so that a later
// List (and thus a Commit's re-fetch) sees the staged state. Values in that
// copy are stored in CLI format.
//
// Rows the script creates have no id, since only the device assigns one.
// Later commands pick them with "find where" on their key fields (see
// FieldDescription.IsKey) or on the values they were added with.
//
// Example:
//
//	script := routeros.NewScriptBackend()
//	identity, _ := routeros.Get[resources.SystemIdentity](ctx, script)
//	identity.Get().Name.Set("core-sw1")
//	_ = identity.Commit(ctx, script)
//	fmt.Print(script.Script())
//	// /system/identity
//	// set name="core-sw1"
type ScriptBackend struct {
	out     strings.Builder
	context string
	rows    map[string][]map[string]string
	logger  Logger
}

// ScriptOption configures a ScriptBackend
type ScriptOption func(*ScriptBackend)

// ScriptLogger sets the logger of a ScriptBackend
func ScriptLogger(logger Logger) ScriptOption {
	return func(s *ScriptBackend) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScriptBackend returns an empty script backend
func NewScriptBackend(opts ...ScriptOption) *ScriptBackend {
	s := &ScriptBackend{
		rows:   map[string][]map[string]string{},
		logger: &NoOpLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Script returns the script generated so far
func (s *ScriptBackend) Script() string {
	return s.out.String()
}

// Dump returns the script generated so far and starts a new one.
// The in-memory rows are kept.
func (s *ScriptBackend) Dump() string {
	script := s.out.String()
	s.out.Reset()
	s.context = ""
	return script
}

// QuoteValue renders v as a double-quoted script string.
func QuoteValue(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, ch := range v {
		switch ch {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			b.WriteString(`\$`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// enter emits a path header if path differs from the current context.
func (s *ScriptBackend) enter(path string) {
	if path == s.context {
		return
	}
	s.out.WriteString("/")
	s.out.WriteString(path)
	s.out.WriteString("\n")
	s.context = path
}

func (s *ScriptBackend) writeModified(r Resource) {
	for _, attr := range ModifiedFields(r, FormatCLI) {
		s.out.WriteString(" ")
		s.out.WriteString(attr.Key)
		s.out.WriteString("=")
		s.out.WriteString(QuoteValue(attr.Value))
	}
}

// snapshot records every field value of r into row.
func snapshot(r Resource, row map[string]string) {
	for _, f := range r.Fields() {
		row[f.Description.Name] = f.Accessor.APIValue(FormatCLI)
	}
}

// selector returns the find-where conditions that pick r on the device.
//
// An id is only known for rows read from a device. Rows created by a script
// have none, so they are picked by their key fields, or failing that by every
// writable value they carried when last read.
func selector(r Resource) []ModifiedAttribute {
	if id, ok := IDField(r); ok {
		return []ModifiedAttribute{{Key: id.Description.Name, Value: id.Accessor.APIValue(FormatCLI)}}
	}
	var conds []ModifiedAttribute
	for _, f := range r.Fields() {
		if !f.Description.IsKey {
			continue
		}
		value := f.Accessor.OriginalValue()
		if value == "" {
			value = f.Accessor.APIValue(FormatCLI)
		}
		if value != "" {
			conds = append(conds, ModifiedAttribute{Key: f.Description.Name, Value: value})
		}
	}
	if len(conds) > 0 {
		return conds
	}
	for _, f := range r.Fields() {
		if f.Description.ReadOnly || f.Description.IsID {
			continue
		}
		if value := f.Accessor.OriginalValue(); value != "" {
			conds = append(conds, ModifiedAttribute{Key: f.Description.Name, Value: value})
		}
	}
	return conds
}

// findWhere renders conds as a "find where" expression.
func findWhere(conds []ModifiedAttribute) string {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, c.Key+"="+QuoteValue(c.Value))
	}
	return "find where " + strings.Join(parts, " and ")
}

func matches(row map[string]string, conds []ModifiedAttribute) bool {
	for _, c := range conds {
		if row[c.Key] != c.Value {
			return false
		}
	}
	return true
}

// List implements Backend from the in-memory rows
func (s *ScriptBackend) List(_ context.Context, newResource func() Resource) ([]Resource, error) {
	path := newResource().ResourcePath()
	stored := s.rows[path]
	out := make([]Resource, 0, len(stored))
	var errs error
	for _, row := range stored {
		r := newResource()
		for _, f := range r.Fields() {
			value, ok := row[f.Description.Name]
			if !ok {
				continue
			}
			if err := f.Accessor.SetFromAPI(value); err != nil {
				errs = multierr.Append(errs, &FieldWriteError{
					Structure: path,
					Field:     f.Description.Name,
					Value:     value,
					Err:       err,
				})
			}
		}
		out = append(out, r)
	}
	return out, errs
}

// Add implements Backend by emitting an "add" line. Unmodified instances
// are ignored.
func (s *ScriptBackend) Add(ctx context.Context, r Resource) error {
	if !IsModified(r) {
		return nil
	}
	path := r.ResourcePath()
	s.enter(path)
	s.out.WriteString("add")
	s.writeModified(r)
	s.out.WriteString("\n")

	row := map[string]string{}
	snapshot(r, row)
	s.rows[path] = append(s.rows[path], row)

	s.logger.Debug(ctx, "script add", "path", path)
	return nil
}

// Update implements Backend by emitting "set [ find where ... ]"
func (s *ScriptBackend) Update(ctx context.Context, r Resource) error {
	if !IsModified(r) {
		return nil
	}
	path := r.ResourcePath()
	conds := selector(r)
	if len(conds) == 0 {
		return &OperationError{Operation: "set", Path: path, Message: ErrNoIDField.Error(), Err: ErrNoIDField}
	}
	where := findWhere(conds)

	s.enter(path)
	fmt.Fprintf(&s.out, "set [ %s ]", where)
	s.writeModified(r)
	s.out.WriteString("\n")

	for _, row := range s.rows[path] {
		if matches(row, conds) {
			snapshot(r, row)
		}
	}

	s.logger.Debug(ctx, "script set", "path", path, "where", where)
	return nil
}

// Set implements Backend for single resources by emitting "set"
func (s *ScriptBackend) Set(ctx context.Context, r Resource) error {
	path := r.ResourcePath()
	s.enter(path)
	s.out.WriteString("set")
	s.writeModified(r)
	s.out.WriteString("\n")

	if len(s.rows[path]) == 0 {
		s.rows[path] = []map[string]string{{}}
	}
	snapshot(r, s.rows[path][0])

	s.logger.Debug(ctx, "script set", "path", path)
	return nil
}

// Delete implements Backend by emitting "remove [find where ...]"
func (s *ScriptBackend) Delete(ctx context.Context, r Resource) error {
	path := r.ResourcePath()
	conds := selector(r)
	if len(conds) == 0 {
		return &OperationError{Operation: "remove", Path: path, Message: ErrNoIDField.Error(), Err: ErrNoIDField}
	}
	where := findWhere(conds)

	s.enter(path)
	fmt.Fprintf(&s.out, "remove [%s]\n", where)

	kept := s.rows[path][:0]
	for _, row := range s.rows[path] {
		if !matches(row, conds) {
			kept = append(kept, row)
		}
	}
	s.rows[path] = kept

	s.logger.Debug(ctx, "script remove", "path", path, "where", where)
	return nil
}

// SaveState writes the in-memory rows as YAML, keyed by resource path.
// Paths and keys are sorted so the output is stable.
func (s *ScriptBackend) SaveState(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	paths := make([]string, 0, len(s.rows))
	for p := range s.rows {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		list := &yaml.Node{Kind: yaml.SequenceNode}
		for _, row := range s.rows[p] {
			list.Content = append(list.Content, rowNode(row))
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p},
			list)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode script state: %w", err)
	}
	return enc.Close()
}

func rowNode(row map[string]string) *yaml.Node {
	keys := make([]string, 0, len(row))
	for k, v := range row {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: row[k], Style: yaml.DoubleQuotedStyle})
	}
	return n
}

// LoadState replaces the in-memory rows with a YAML document produced by
// SaveState, e.g. a snapshot of a device taken earlier.
func (s *ScriptBackend) LoadState(r io.Reader) error {
	rows := map[string][]map[string]string{}
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
		return fmt.Errorf("decode script state: %w", err)
	}
	s.rows = rows
	return nil
}
