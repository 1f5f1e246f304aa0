// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package resources

import "github.com/netascode/go-routeros"

var (
	bridgeVlanFiltering = routeros.FieldDescription{Name: "vlan-filtering"}
	bridgePVID          = routeros.FieldDescription{Name: "pvid"}
	bridgeMTU           = routeros.FieldDescription{Name: "mtu"}
	bridgeAdminMAC      = routeros.FieldDescription{Name: "admin-mac"}
	bridgeAutoMAC       = routeros.FieldDescription{Name: "auto-mac"}
	bridgeAgingTime     = routeros.FieldDescription{Name: "ageing-time"}
)

// Bridge is a software bridge (/interface/bridge)
type Bridge struct {
	routeros.ListKind

	ID            routeros.StringField
	Name          routeros.StringField
	VlanFiltering routeros.BoolField
	PVID          routeros.Uint16Field
	MTU           routeros.AutoUint16Field
	AdminMAC      routeros.MACField
	AutoMAC       routeros.BoolField
	AgeingTime    routeros.DurationField
	Comment       routeros.StringField
	Disabled      routeros.BoolField
}

func (*Bridge) ResourcePath() string { return "interface/bridge" }

func (b *Bridge) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &b.ID},
		{Description: &ifaceNameField, Accessor: &b.Name},
		{Description: &bridgeVlanFiltering, Accessor: &b.VlanFiltering},
		{Description: &bridgePVID, Accessor: &b.PVID},
		{Description: &bridgeMTU, Accessor: &b.MTU},
		{Description: &bridgeAdminMAC, Accessor: &b.AdminMAC},
		{Description: &bridgeAutoMAC, Accessor: &b.AutoMAC},
		{Description: &bridgeAgingTime, Accessor: &b.AgeingTime},
		{Description: &commentField, Accessor: &b.Comment},
		{Description: &disabledField, Accessor: &b.Disabled},
	}
}

func (*Bridge) IsDynamic() bool { return false }

var (
	bridgePortBridge     = routeros.FieldDescription{Name: "bridge"}
	bridgePortInterface  = routeros.FieldDescription{Name: "interface", IsKey: true}
	bridgePortFrameTypes = routeros.FieldDescription{Name: "frame-types"}
	bridgePortHorizon    = routeros.FieldDescription{Name: "horizon"}
	bridgePortHW         = routeros.FieldDescription{Name: "hw"}
	bridgePortIngress    = routeros.FieldDescription{Name: "ingress-filtering"}
)

// BridgePort attaches an interface to a bridge (/interface/bridge/port)
type BridgePort struct {
	routeros.ListKind

	ID               routeros.StringField
	Bridge           routeros.StringField
	Interface        routeros.StringField
	PVID             routeros.Uint16Field
	FrameTypes       FrameTypesField
	IngressFiltering routeros.BoolField
	Horizon          OptionalUint32Field
	HW               routeros.BoolField
	Comment          routeros.StringField
	Disabled         routeros.BoolField
	Dynamic          routeros.BoolField
}

func (*BridgePort) ResourcePath() string { return "interface/bridge/port" }

func (p *BridgePort) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &p.ID},
		{Description: &bridgePortBridge, Accessor: &p.Bridge},
		{Description: &bridgePortInterface, Accessor: &p.Interface},
		{Description: &bridgePVID, Accessor: &p.PVID},
		{Description: &bridgePortFrameTypes, Accessor: &p.FrameTypes},
		{Description: &bridgePortIngress, Accessor: &p.IngressFiltering},
		{Description: &bridgePortHorizon, Accessor: &p.Horizon},
		{Description: &bridgePortHW, Accessor: &p.HW},
		{Description: &commentField, Accessor: &p.Comment},
		{Description: &disabledField, Accessor: &p.Disabled},
		{Description: &dynamicField, Accessor: &p.Dynamic},
	}
}

// IsDynamic reports ports added by the device itself, e.g. by CAPsMAN
func (p *BridgePort) IsDynamic() bool { return p.Dynamic.Value() }

var (
	bridgeVlanIDs      = routeros.FieldDescription{Name: "vlan-ids"}
	bridgeVlanTagged   = routeros.FieldDescription{Name: "tagged"}
	bridgeVlanUntagged = routeros.FieldDescription{Name: "untagged"}
)

// BridgeVlan is one entry of the bridge VLAN table (/interface/bridge/vlan)
type BridgeVlan struct {
	routeros.ListKind

	ID       routeros.StringField
	Bridge   routeros.StringField
	VlanIDs  routeros.Uint16SetField
	Tagged   routeros.StringSetField
	Untagged routeros.StringSetField
	Comment  routeros.StringField
	Disabled routeros.BoolField
	Dynamic  routeros.BoolField
}

func (*BridgeVlan) ResourcePath() string { return "interface/bridge/vlan" }

func (v *BridgeVlan) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &v.ID},
		{Description: &bridgePortBridge, Accessor: &v.Bridge},
		{Description: &bridgeVlanIDs, Accessor: &v.VlanIDs},
		{Description: &bridgeVlanTagged, Accessor: &v.Tagged},
		{Description: &bridgeVlanUntagged, Accessor: &v.Untagged},
		{Description: &commentField, Accessor: &v.Comment},
		{Description: &disabledField, Accessor: &v.Disabled},
		{Description: &dynamicField, Accessor: &v.Dynamic},
	}
}

func (v *BridgeVlan) IsDynamic() bool { return v.Dynamic.Value() }
