// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package resources

import "github.com/netascode/go-routeros"

// SystemIdentity is the device name (/system/identity)
type SystemIdentity struct {
	routeros.SingleKind

	Name routeros.StringField
}

func (*SystemIdentity) ResourcePath() string { return "system/identity" }

func (s *SystemIdentity) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &nameField, Accessor: &s.Name},
	}
}

func (*SystemIdentity) IsDynamic() bool { return false }

// Every field of SystemResource is reported by the device and read-only.
var (
	resourceUptime       = routeros.FieldDescription{Name: "uptime", ReadOnly: true}
	resourceVersion      = routeros.FieldDescription{Name: "version", ReadOnly: true}
	resourceBuildTime    = routeros.FieldDescription{Name: "build-time", ReadOnly: true}
	resourceBoardName    = routeros.FieldDescription{Name: "board-name", ReadOnly: true}
	resourceArchitecture = routeros.FieldDescription{Name: "architecture-name", ReadOnly: true}
	resourcePlatform     = routeros.FieldDescription{Name: "platform", ReadOnly: true}
	resourceCPU          = routeros.FieldDescription{Name: "cpu", ReadOnly: true}
	resourceCPUCount     = routeros.FieldDescription{Name: "cpu-count", ReadOnly: true}
	resourceCPUFrequency = routeros.FieldDescription{Name: "cpu-frequency", ReadOnly: true}
	resourceCPULoad      = routeros.FieldDescription{Name: "cpu-load", ReadOnly: true}
	resourceFreeMemory   = routeros.FieldDescription{Name: "free-memory", ReadOnly: true}
	resourceTotalMemory  = routeros.FieldDescription{Name: "total-memory", ReadOnly: true}
	resourceFreeHDD      = routeros.FieldDescription{Name: "free-hdd-space", ReadOnly: true}
	resourceTotalHDD     = routeros.FieldDescription{Name: "total-hdd-space", ReadOnly: true}
	resourceBadBlocks    = routeros.FieldDescription{Name: "bad-blocks", ReadOnly: true}
)

// SystemResource reports platform and usage counters (/system/resource)
type SystemResource struct {
	routeros.SingleKind

	Uptime           routeros.DurationField
	Version          routeros.StringField
	BuildTime        routeros.StringField
	BoardName        routeros.StringField
	ArchitectureName routeros.StringField
	Platform         routeros.StringField
	CPU              routeros.StringField
	CPUCount         routeros.Uint16Field
	CPUFrequency     routeros.Uint64Field
	CPULoad          routeros.Uint8Field
	FreeMemory       routeros.Uint64Field
	TotalMemory      routeros.Uint64Field
	FreeHDDSpace     routeros.Uint64Field
	TotalHDDSpace    routeros.Uint64Field
	BadBlocks        routeros.StringField
}

func (*SystemResource) ResourcePath() string { return "system/resource" }

func (s *SystemResource) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &resourceUptime, Accessor: &s.Uptime},
		{Description: &resourceVersion, Accessor: &s.Version},
		{Description: &resourceBuildTime, Accessor: &s.BuildTime},
		{Description: &resourceBoardName, Accessor: &s.BoardName},
		{Description: &resourceArchitecture, Accessor: &s.ArchitectureName},
		{Description: &resourcePlatform, Accessor: &s.Platform},
		{Description: &resourceCPU, Accessor: &s.CPU},
		{Description: &resourceCPUCount, Accessor: &s.CPUCount},
		{Description: &resourceCPUFrequency, Accessor: &s.CPUFrequency},
		{Description: &resourceCPULoad, Accessor: &s.CPULoad},
		{Description: &resourceFreeMemory, Accessor: &s.FreeMemory},
		{Description: &resourceTotalMemory, Accessor: &s.TotalMemory},
		{Description: &resourceFreeHDD, Accessor: &s.FreeHDDSpace},
		{Description: &resourceTotalHDD, Accessor: &s.TotalHDDSpace},
		{Description: &resourceBadBlocks, Accessor: &s.BadBlocks},
	}
}

func (*SystemResource) IsDynamic() bool { return false }
