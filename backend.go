// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"context"
	"fmt"
)

// Backend reads and writes resources on a device or its stand-in.
//
// Implementations are the live API Client, the REST client and the
// ScriptBackend. Writes only carry modified fields.
type Backend interface {
	// List returns every instance under the path of newResource().
	// newResource must return a fresh empty instance on each call.
	List(ctx context.Context, newResource func() Resource) ([]Resource, error)

	// Add creates a list resource instance.
	Add(ctx context.Context, r Resource) error

	// Update writes the modified fields of an existing list resource instance.
	Update(ctx context.Context, r Resource) error

	// Set writes the modified fields of a single resource.
	Set(ctx context.Context, r Resource) error

	// Delete removes a list resource instance.
	Delete(ctx context.Context, r Resource) error
}

// List fetches all instances of R from b.
func List[R any, P ResourcePtr[R]](ctx context.Context, b Backend) ([]P, error) {
	rows, err := b.List(ctx, func() Resource { return P(new(R)) })
	if err != nil {
		return nil, err
	}
	out := make([]P, 0, len(rows))
	for _, row := range rows {
		p, ok := row.(P)
		if !ok {
			return nil, fmt.Errorf("backend returned %T, expected %T", row, P(nil))
		}
		out = append(out, p)
	}
	return out, nil
}

// Fetch lists R from b and wraps the result in a clean Collection.
func Fetch[R any, P ResourcePtr[R]](ctx context.Context, b Backend) (*Collection[R, P], error) {
	c := &Collection[R, P]{}
	if err := c.Rollback(ctx, b); err != nil {
		return nil, err
	}
	return c, nil
}

// Get loads the single resource R from b. A device that reports nothing
// yields a default instance.
func Get[R any, P ResourcePtr[R]](ctx context.Context, b Backend) (*SingleCollection[R, P], error) {
	c := &SingleCollection[R, P]{}
	if err := c.Rollback(ctx, b); err != nil {
		return nil, err
	}
	return c, nil
}
