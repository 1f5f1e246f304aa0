// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package resources

import "github.com/netascode/go-routeros"

var (
	defaultNameField  = routeros.FieldDescription{Name: "default-name", IsKey: true}
	mtuField          = routeros.FieldDescription{Name: "mtu"}
	macAddressField   = routeros.FieldDescription{Name: "mac-address"}
	origMACField      = routeros.FieldDescription{Name: "orig-mac-address", ReadOnly: true}
	runningField      = routeros.FieldDescription{Name: "running", ReadOnly: true}
	ethernetAdvertise = routeros.FieldDescription{Name: "advertise"}
	ethernetL2MTU     = routeros.FieldDescription{Name: "l2mtu"}
)

// InterfaceEthernet is a physical ethernet or SFP port (/interface/ethernet).
//
// Ports cannot be created or deleted; DefaultName identifies the hardware
// port while Name may be changed freely.
type InterfaceEthernet struct {
	routeros.ListKind

	ID             routeros.StringField
	DefaultName    routeros.StringField
	Name           routeros.StringField
	MTU            routeros.Uint16Field
	L2MTU          routeros.Uint16Field
	MACAddress     routeros.MACField
	OrigMACAddress routeros.MACField
	Advertise      routeros.StringSetField
	Running        routeros.BoolField
	Comment        routeros.StringField
	Disabled       routeros.BoolField
}

func (*InterfaceEthernet) ResourcePath() string { return "interface/ethernet" }

func (e *InterfaceEthernet) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &e.ID},
		{Description: &defaultNameField, Accessor: &e.DefaultName},
		{Description: &nameField, Accessor: &e.Name},
		{Description: &mtuField, Accessor: &e.MTU},
		{Description: &ethernetL2MTU, Accessor: &e.L2MTU},
		{Description: &macAddressField, Accessor: &e.MACAddress},
		{Description: &origMACField, Accessor: &e.OrigMACAddress},
		{Description: &ethernetAdvertise, Accessor: &e.Advertise},
		{Description: &runningField, Accessor: &e.Running},
		{Description: &commentField, Accessor: &e.Comment},
		{Description: &disabledField, Accessor: &e.Disabled},
	}
}

func (*InterfaceEthernet) IsDynamic() bool { return false }

var (
	wirelessSSID            = routeros.FieldDescription{Name: "ssid"}
	wirelessMode            = routeros.FieldDescription{Name: "mode"}
	wirelessBand            = routeros.FieldDescription{Name: "band"}
	wirelessFrequency       = routeros.FieldDescription{Name: "frequency"}
	wirelessSecurityProfile = routeros.FieldDescription{Name: "security-profile"}
)

// Wireless is a legacy wireless interface (/interface/wireless)
type Wireless struct {
	routeros.ListKind

	ID              routeros.StringField
	DefaultName     routeros.StringField
	Name            routeros.StringField
	SSID            routeros.StringField
	Mode            WirelessModeField
	Band            routeros.StringField
	Frequency       routeros.Field[routeros.Auto[uint32], routeros.AutoCodec[uint32, routeros.Uint32Codec]]
	SecurityProfile routeros.StringField
	MACAddress      routeros.MACField
	Running         routeros.BoolField
	Comment         routeros.StringField
	Disabled        routeros.BoolField
}

func (*Wireless) ResourcePath() string { return "interface/wireless" }

func (w *Wireless) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &w.ID},
		{Description: &defaultNameField, Accessor: &w.DefaultName},
		{Description: &nameField, Accessor: &w.Name},
		{Description: &wirelessSSID, Accessor: &w.SSID},
		{Description: &wirelessMode, Accessor: &w.Mode},
		{Description: &wirelessBand, Accessor: &w.Band},
		{Description: &wirelessFrequency, Accessor: &w.Frequency},
		{Description: &wirelessSecurityProfile, Accessor: &w.SecurityProfile},
		{Description: &macAddressField, Accessor: &w.MACAddress},
		{Description: &runningField, Accessor: &w.Running},
		{Description: &commentField, Accessor: &w.Comment},
		{Description: &disabledField, Accessor: &w.Disabled},
	}
}

func (*Wireless) IsDynamic() bool { return false }

var (
	vlanInterface = routeros.FieldDescription{Name: "interface"}
	vlanID        = routeros.FieldDescription{Name: "vlan-id"}
)

// InterfaceVlan is a tagged sub-interface (/interface/vlan)
type InterfaceVlan struct {
	routeros.ListKind

	ID        routeros.StringField
	Name      routeros.StringField
	Interface routeros.StringField
	VlanID    routeros.Uint16Field
	MTU       routeros.Uint16Field
	Comment   routeros.StringField
	Disabled  routeros.BoolField
}

func (*InterfaceVlan) ResourcePath() string { return "interface/vlan" }

func (v *InterfaceVlan) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &v.ID},
		{Description: &ifaceNameField, Accessor: &v.Name},
		{Description: &vlanInterface, Accessor: &v.Interface},
		{Description: &vlanID, Accessor: &v.VlanID},
		{Description: &mtuField, Accessor: &v.MTU},
		{Description: &commentField, Accessor: &v.Comment},
		{Description: &disabledField, Accessor: &v.Disabled},
	}
}

func (*InterfaceVlan) IsDynamic() bool { return false }

var (
	egressPorts          = routeros.FieldDescription{Name: "ports"}
	egressCustomerVID    = routeros.FieldDescription{Name: "customer-vid"}
	egressNewCustomerVID = routeros.FieldDescription{Name: "new-customer-vid"}
)

// EgressVlanTranslation rewrites the VLAN id of frames leaving switch
// ports (/interface/ethernet/switch/egress-vlan-translation)
type EgressVlanTranslation struct {
	routeros.ListKind

	ID             routeros.StringField
	Ports          routeros.StringSetField
	CustomerVID    routeros.Uint16RangeField
	NewCustomerVID routeros.Uint16Field
	Comment        routeros.StringField
	Disabled       routeros.BoolField
}

func (*EgressVlanTranslation) ResourcePath() string {
	return "interface/ethernet/switch/egress-vlan-translation"
}

func (t *EgressVlanTranslation) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &t.ID},
		{Description: &egressPorts, Accessor: &t.Ports},
		{Description: &egressCustomerVID, Accessor: &t.CustomerVID},
		{Description: &egressNewCustomerVID, Accessor: &t.NewCustomerVID},
		{Description: &commentField, Accessor: &t.Comment},
		{Description: &disabledField, Accessor: &t.Disabled},
	}
}

func (*EgressVlanTranslation) IsDynamic() bool { return false }
