// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

// FieldDescription is the static metadata of one resource field.
type FieldDescription struct {
	// Name is the attribute key on the wire (e.g. "default-name", ".id")
	Name string

	// ReadOnly fields are reported by the device but never written back
	ReadOnly bool

	// IsID marks the identity field of a list resource
	IsID bool

	// IsKey marks a field whose value identifies the instance on the device
	// when its id is not known, e.g. the default-name of an ethernet port
	IsKey bool
}

// FieldRef pairs a field's description with the cell that holds its value.
type FieldRef struct {
	Description *FieldDescription
	Accessor    FieldAccessor
}

// Resource is implemented by every configuration object type.
//
// Fields must be implemented on the pointer receiver and return the cells in
// a stable order, since backends emit attributes in that order.
type Resource interface {
	// ResourcePath is the command path without leading slash, e.g. "interface/bridge/port"
	ResourcePath() string

	Fields() []FieldRef

	// IsDynamic reports whether the instance is managed by the device itself.
	// Dynamic instances are never written back.
	IsDynamic() bool
}

// ListResource is a resource with many instances identified by an id field.
type ListResource interface {
	Resource
	listResource()
}

// SingleResource is a resource with exactly one instance per device.
type SingleResource interface {
	Resource
	singleResource()
}

// ListKind can be embedded in a struct to mark it as a list resource.
type ListKind struct{}

func (ListKind) listResource() {}

// SingleKind can be embedded in a struct to mark it as a single resource.
type SingleKind struct{}

func (SingleKind) singleResource() {}

// ResourcePtr constrains P to be a pointer to R that implements Resource,
// which lets generic code allocate fresh instances.
type ResourcePtr[R any] interface {
	*R
	Resource
}

// IsModified reports whether any writable field of r differs from what the
// backend last reported. Read-only fields are never sent and do not count.
func IsModified(r Resource) bool {
	for _, f := range r.Fields() {
		if f.Description.ReadOnly {
			continue
		}
		if _, ok := f.Accessor.ModifiedValue(FormatAPI); ok {
			return true
		}
	}
	return false
}

// IDField returns the identity field of r if it currently has a value.
func IDField(r Resource) (FieldRef, bool) {
	for _, f := range r.Fields() {
		if f.Description.IsID && f.Accessor.HasValue() {
			return f, true
		}
	}
	return FieldRef{}, false
}

// FieldByName looks up a field by its wire name.
func FieldByName(r Resource, name string) (FieldRef, bool) {
	for _, f := range r.Fields() {
		if f.Description.Name == name {
			return f, true
		}
	}
	return FieldRef{}, false
}

// ModifiedAttribute is one changed key/value pair ready for the wire.
type ModifiedAttribute struct {
	Key   string
	Value string
}

// ModifiedFields returns the writable fields of r whose value changed,
// encoded in format, in field order.
func ModifiedFields(r Resource, format ValueFormat) []ModifiedAttribute {
	var attrs []ModifiedAttribute
	for _, f := range r.Fields() {
		if f.Description.ReadOnly {
			continue
		}
		if v, ok := f.Accessor.ModifiedValue(format); ok {
			attrs = append(attrs, ModifiedAttribute{Key: f.Description.Name, Value: v})
		}
	}
	return attrs
}

// ResetFields marks every field of r as unmodified by re-deriving it from its original.
func ResetFields(r Resource) error {
	for _, f := range r.Fields() {
		if err := f.Accessor.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// SetFromAPI writes one received attribute into the matching field of r.
func SetFromAPI(r Resource, structure, key, value string) error {
	f, ok := FieldByName(r, key)
	if !ok {
		return &FieldMissingError{Structure: structure, Field: key, Value: value}
	}
	if err := f.Accessor.SetFromAPI(value); err != nil {
		return &FieldWriteError{Structure: structure, Field: key, Value: value, Err: err}
	}
	return nil
}
