// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import "context"

// SingleCollection holds the one instance of a single resource such as
// "system/identity".
type SingleCollection[R any, P ResourcePtr[R]] struct {
	value P
}

// Get returns the instance for in-place modification.
func (c *SingleCollection[R, P]) Get() P {
	if c.value == nil {
		c.value = P(new(R))
	}
	return c.value
}

// State reports whether the instance has been modified.
func (c *SingleCollection[R, P]) State() CollectionState {
	if c.value != nil && IsModified(c.value) {
		return StateStaged
	}
	return StateClean
}

// Commit writes the modified fields with b.Set and re-fetches.
// An unmodified instance is not written.
func (c *SingleCollection[R, P]) Commit(ctx context.Context, b Backend) error {
	if v := c.Get(); IsModified(v) {
		if err := b.Set(ctx, v); err != nil {
			return err
		}
	}
	return c.Rollback(ctx, b)
}

// Rollback re-fetches the instance from b, falling back to a default
// instance when the backend reports none.
func (c *SingleCollection[R, P]) Rollback(ctx context.Context, b Backend) error {
	rows, err := List[R, P](ctx, b)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		c.value = rows[0]
	} else {
		c.value = P(new(R))
	}
	return nil
}
