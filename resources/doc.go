// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package resources contains typed RouterOS configuration objects.
//
// Each type maps one command path ("interface/bridge/port") to a struct of
// routeros field cells. List resources embed routeros.ListKind and carry an
// ".id" identity field; single resources embed routeros.SingleKind.
//
// The field descriptions are package-level values shared by every instance.
package resources
