// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import "context"

// Supplier hands out the backends a configuration step reads from and
// writes to. They may differ, e.g. reading the live device while writing
// a script to review before applying.
type Supplier interface {
	Reader() Backend
	Writer() Backend
}

// SingleSupplier reads from and writes to the same backend
type SingleSupplier struct {
	Backend Backend
}

func (s SingleSupplier) Reader() Backend { return s.Backend }

func (s SingleSupplier) Writer() Backend { return s.Backend }

// SplitSupplier reads from one backend and writes to another
type SplitSupplier struct {
	Read  Backend
	Write Backend
}

func (s SplitSupplier) Reader() Backend { return s.Read }

func (s SplitSupplier) Writer() Backend { return s.Write }

// Configuration is a unit of desired state that can be applied through a Supplier
type Configuration interface {
	Apply(ctx context.Context, s Supplier) error
}

// ConfigurationFunc adapts a function to Configuration
type ConfigurationFunc func(ctx context.Context, s Supplier) error

func (f ConfigurationFunc) Apply(ctx context.Context, s Supplier) error { return f(ctx, s) }

// splitBackend lists from read and writes to write. Commit re-fetches from
// the reader, so staged writes are not visible through it.
type splitBackend struct {
	read  Backend
	write Backend
}

// SupplierBackend returns a Backend that lists through Reader and writes through Writer
func SupplierBackend(s Supplier) Backend {
	return splitBackend{read: s.Reader(), write: s.Writer()}
}

func (b splitBackend) List(ctx context.Context, newResource func() Resource) ([]Resource, error) {
	return b.read.List(ctx, newResource)
}

func (b splitBackend) Add(ctx context.Context, r Resource) error    { return b.write.Add(ctx, r) }
func (b splitBackend) Update(ctx context.Context, r Resource) error { return b.write.Update(ctx, r) }
func (b splitBackend) Set(ctx context.Context, r Resource) error    { return b.write.Set(ctx, r) }
func (b splitBackend) Delete(ctx context.Context, r Resource) error { return b.write.Delete(ctx, r) }
