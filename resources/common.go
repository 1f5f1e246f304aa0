// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package resources

import "github.com/netascode/go-routeros"

// Descriptions shared by most list resources
var (
	idField       = routeros.FieldDescription{Name: ".id", ReadOnly: true, IsID: true}
	dynamicField  = routeros.FieldDescription{Name: "dynamic", ReadOnly: true}
	disabledField = routeros.FieldDescription{Name: "disabled"}
	commentField  = routeros.FieldDescription{Name: "comment"}
	nameField     = routeros.FieldDescription{Name: "name"}

	// Interface names are unique across /interface, so they identify rows
	// created without a known id.
	ifaceNameField = routeros.FieldDescription{Name: "name", IsKey: true}
)

// FrameTypes is the frame admission policy of a bridge port
type FrameTypes string

const (
	FrameTypesAdmitAll                           FrameTypes = "admit-all"
	FrameTypesAdmitOnlyUntaggedAndPriorityTagged FrameTypes = "admit-only-untagged-and-priority-tagged"
	FrameTypesAdmitOnlyVlanTagged                FrameTypes = "admit-only-vlan-tagged"
)

// IsValid reports whether f is one of the known frame types
func (f FrameTypes) IsValid() bool {
	switch f {
	case FrameTypesAdmitAll, FrameTypesAdmitOnlyUntaggedAndPriorityTagged, FrameTypesAdmitOnlyVlanTagged:
		return true
	}
	return false
}

// WirelessMode is the operating mode of a wireless interface
type WirelessMode string

const (
	WirelessModeAPBridge      WirelessMode = "ap-bridge"
	WirelessModeBridge        WirelessMode = "bridge"
	WirelessModeStation       WirelessMode = "station"
	WirelessModeStationBridge WirelessMode = "station-bridge"
)

func (m WirelessMode) IsValid() bool {
	switch m {
	case WirelessModeAPBridge, WirelessModeBridge, WirelessModeStation, WirelessModeStationBridge:
		return true
	}
	return false
}

// Cells of the enum and keyword types above
type (
	FrameTypesField     = routeros.Field[FrameTypes, routeros.EnumCodec[FrameTypes]]
	WirelessModeField   = routeros.Field[WirelessMode, routeros.EnumCodec[WirelessMode]]
	OptionalUint32Field = routeros.Field[routeros.Optional[uint32], routeros.OptionalCodec[uint32, routeros.Uint32Codec]]
)
