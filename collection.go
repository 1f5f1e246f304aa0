// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
)

// CollectionState describes whether a collection has unsaved changes
type CollectionState int

const (
	// StateClean means the collection mirrors the last fetch
	StateClean CollectionState = iota

	// StateStaged means there are local changes not yet committed
	StateStaged

	// StateCommitting means Commit is running
	StateCommitting
)

// String returns the string representation of a CollectionState
func (s CollectionState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateStaged:
		return "staged"
	case StateCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// Collection stages changes to the instances of a list resource.
//
// Instances live in exactly one of four buckets:
//   - fetched: known to the backend, possibly modified in place
//   - added: created locally, not yet known to the backend
//   - removed: explicitly marked for deletion
//   - aside: set aside by PutAside; restored to fetched when looked up again,
//     deleted on commit otherwise
//
// A Collection is not safe for concurrent use.
type Collection[R any, P ResourcePtr[R]] struct {
	fetched []P
	added   []P
	removed []P
	aside   []P

	staged     bool
	committing bool
}

// NewCollection returns a clean collection over already fetched instances.
func NewCollection[R any, P ResourcePtr[R]](fetched []P) *Collection[R, P] {
	return &Collection[R, P]{fetched: fetched}
}

// State reports whether the collection has pending changes.
func (c *Collection[R, P]) State() CollectionState {
	if c.committing {
		return StateCommitting
	}
	if c.staged || len(c.added) > 0 || len(c.removed) > 0 || len(c.aside) > 0 {
		return StateStaged
	}
	for _, r := range c.fetched {
		if IsModified(r) {
			return StateStaged
		}
	}
	return StateClean
}

// All returns the live instances: fetched ones followed by added ones.
func (c *Collection[R, P]) All() []P {
	out := make([]P, 0, len(c.fetched)+len(c.added))
	out = append(out, c.fetched...)
	return append(out, c.added...)
}

// Len returns the number of live instances.
func (c *Collection[R, P]) Len() int {
	return len(c.fetched) + len(c.added)
}

// Find returns the first live instance matching pred.
func (c *Collection[R, P]) Find(pred func(P) bool) (P, bool) {
	for _, r := range c.fetched {
		if pred(r) {
			return r, true
		}
	}
	for _, r := range c.added {
		if pred(r) {
			return r, true
		}
	}
	return nil, false
}

// Add stages r for creation.
func (c *Collection[R, P]) Add(r P) {
	c.added = append(c.added, r)
	c.staged = true
}

// GetOrDefault returns the first instance matching pred.
//
// Fetched instances are searched first, then added ones, then the ones set
// aside; a match from the latter is restored to fetched. Without a match a
// new default instance is staged for creation and returned.
func (c *Collection[R, P]) GetOrDefault(pred func(P) bool) P {
	for _, r := range c.fetched {
		if pred(r) {
			return r
		}
	}
	for _, r := range c.added {
		if pred(r) {
			return r
		}
	}
	for i, r := range c.aside {
		if pred(r) {
			c.aside = append(c.aside[:i], c.aside[i+1:]...)
			c.fetched = append(c.fetched, r)
			c.staged = true
			return r
		}
	}
	r := P(new(R))
	c.Add(r)
	return r
}

// Remove drops matching added instances and marks matching fetched and
// set-aside instances for deletion.
func (c *Collection[R, P]) Remove(pred func(P) bool) {
	var dropped []P
	c.added, _ = partition(c.added, pred)
	c.fetched, dropped = partition(c.fetched, pred)
	c.removed = append(c.removed, dropped...)
	c.aside, dropped = partition(c.aside, pred)
	c.removed = append(c.removed, dropped...)
	c.staged = true
}

// PutAllAside moves every fetched instance aside. Anything not looked up
// again before Commit is deleted.
func (c *Collection[R, P]) PutAllAside() {
	c.aside = append(c.aside, c.fetched...)
	c.fetched = nil
	c.staged = true
}

// PutAllAsideAndMutate is PutAllAside followed by mutate on every set-aside instance.
func (c *Collection[R, P]) PutAllAsideAndMutate(mutate func(P)) {
	c.PutAllAside()
	for _, r := range c.aside {
		mutate(r)
	}
}

// PutAside moves the fetched instances matching pred aside.
func (c *Collection[R, P]) PutAside(pred func(P) bool) {
	var moved []P
	c.fetched, moved = partition(c.fetched, pred)
	c.aside = append(c.aside, moved...)
	c.staged = true
}

// PutAsideAndMutate is PutAside followed by mutate on every set-aside
// instance matching pred.
func (c *Collection[R, P]) PutAsideAndMutate(pred func(P) bool, mutate func(P)) {
	c.PutAside(pred)
	for _, r := range c.aside {
		if pred(r) {
			mutate(r)
		}
	}
}

// Commit writes the staged changes to b and re-fetches.
//
// Deletes are issued first (removed, then set aside), then updates of
// modified fetched instances, then adds, so that an identity freed by a
// delete can be reused by an add in the same commit. Dynamic instances are
// skipped. The first backend error aborts the commit and leaves the
// collection staged; calls already issued are not undone.
func (c *Collection[R, P]) Commit(ctx context.Context, b Backend) error {
	c.committing = true
	defer func() { c.committing = false }()

	for _, bucket := range [][]P{c.removed, c.aside} {
		for _, r := range bucket {
			if r.IsDynamic() {
				continue
			}
			if err := b.Delete(ctx, r); err != nil {
				return err
			}
		}
	}
	for _, r := range c.fetched {
		if r.IsDynamic() || !IsModified(r) {
			continue
		}
		if err := b.Update(ctx, r); err != nil {
			return err
		}
	}
	for _, r := range c.added {
		if r.IsDynamic() {
			continue
		}
		if err := b.Add(ctx, r); err != nil {
			return err
		}
	}

	return c.Rollback(ctx, b)
}

// Rollback discards all staged changes and re-fetches from b.
// On error the collection is left unchanged.
func (c *Collection[R, P]) Rollback(ctx context.Context, b Backend) error {
	rows, err := List[R, P](ctx, b)
	if err != nil {
		return err
	}
	c.fetched = rows
	c.added = nil
	c.removed = nil
	c.aside = nil
	c.staged = false
	return nil
}

// GetOrCreateByValue returns the instance whose field equals value, creating
// it if needed, and sets the field to value.
//
// The search order is that of GetOrDefault. Calling it twice with the same
// value returns the same instance.
func GetOrCreateByValue[R any, P ResourcePtr[R], T any, C Codec[T]](c *Collection[R, P], field func(P) *Field[T, C], value T) P {
	r := c.GetOrDefault(func(r P) bool {
		return fieldEquals(field(r), value)
	})
	field(r).Set(value)
	return r
}

// GetOrCreateByValue2 is GetOrCreateByValue keyed on two fields at once.
func GetOrCreateByValue2[R any, P ResourcePtr[R], T1 any, C1 Codec[T1], T2 any, C2 Codec[T2]](
	c *Collection[R, P],
	field1 func(P) *Field[T1, C1], value1 T1,
	field2 func(P) *Field[T2, C2], value2 T2,
) P {
	r := c.GetOrDefault(func(r P) bool {
		return fieldEquals(field1(r), value1) && fieldEquals(field2(r), value2)
	})
	field1(r).Set(value1)
	field2(r).Set(value2)
	return r
}

func fieldEquals[T any, C Codec[T]](f *Field[T, C], value T) bool {
	v, ok := f.Get()
	if !ok {
		return false
	}
	var c C
	return c.Equal(v, value)
}

// partition splits s into elements not matching and matching pred.
func partition[P any](s []P, pred func(P) bool) (keep, matched []P) {
	for _, r := range s {
		if pred(r) {
			matched = append(matched, r)
		} else {
			keep = append(keep, r)
		}
	}
	return keep, matched
}
