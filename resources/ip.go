// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package resources

import (
	"net/netip"

	"github.com/netascode/go-routeros"
)

var (
	addressAddress   = routeros.FieldDescription{Name: "address"}
	addressNetwork   = routeros.FieldDescription{Name: "network", ReadOnly: true}
	addressInterface = routeros.FieldDescription{Name: "interface"}
)

// IPAddress is an address assigned to an interface (/ip/address)
type IPAddress struct {
	routeros.ListKind

	ID        routeros.StringField
	Address   routeros.PrefixField
	Network   routeros.AddrField
	Interface routeros.StringField
	Comment   routeros.StringField
	Disabled  routeros.BoolField
	Dynamic   routeros.BoolField
}

func (*IPAddress) ResourcePath() string { return "ip/address" }

func (a *IPAddress) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &a.ID},
		{Description: &addressAddress, Accessor: &a.Address},
		{Description: &addressNetwork, Accessor: &a.Network},
		{Description: &addressInterface, Accessor: &a.Interface},
		{Description: &commentField, Accessor: &a.Comment},
		{Description: &disabledField, Accessor: &a.Disabled},
		{Description: &dynamicField, Accessor: &a.Dynamic},
	}
}

// IsDynamic reports addresses assigned by DHCP or similar
func (a *IPAddress) IsDynamic() bool { return a.Dynamic.Value() }

var (
	routeDstAddress = routeros.FieldDescription{Name: "dst-address"}
	routeGateway    = routeros.FieldDescription{Name: "gateway"}
	routeDistance   = routeros.FieldDescription{Name: "distance"}
	routeScope      = routeros.FieldDescription{Name: "scope"}
)

// IPRoute is a static route (/ip/route)
type IPRoute struct {
	routeros.ListKind

	ID         routeros.StringField
	DstAddress routeros.PrefixField
	Gateway    routeros.IPOrInterfaceField
	Distance   routeros.Uint8Field
	Scope      routeros.Uint8Field
	Comment    routeros.StringField
	Disabled   routeros.BoolField
	Dynamic    routeros.BoolField
}

func (*IPRoute) ResourcePath() string { return "ip/route" }

func (r *IPRoute) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &idField, Accessor: &r.ID},
		{Description: &routeDstAddress, Accessor: &r.DstAddress},
		{Description: &routeGateway, Accessor: &r.Gateway},
		{Description: &routeDistance, Accessor: &r.Distance},
		{Description: &routeScope, Accessor: &r.Scope},
		{Description: &commentField, Accessor: &r.Comment},
		{Description: &disabledField, Accessor: &r.Disabled},
		{Description: &dynamicField, Accessor: &r.Dynamic},
	}
}

func (r *IPRoute) IsDynamic() bool { return r.Dynamic.Value() }

var (
	dnsServers             = routeros.FieldDescription{Name: "servers"}
	dnsAllowRemoteRequests = routeros.FieldDescription{Name: "allow-remote-requests"}
	dnsCacheSize           = routeros.FieldDescription{Name: "cache-size"}
	dnsCacheMaxTTL         = routeros.FieldDescription{Name: "cache-max-ttl"}
	dnsDynamicServers      = routeros.FieldDescription{Name: "dynamic-servers", ReadOnly: true}
)

// AddrSetField is a comma separated list of addresses
type AddrSetField = routeros.Field[routeros.Set[netip.Addr], routeros.SetCodec[netip.Addr, routeros.AddrCodec]]

// IPDNS holds the resolver settings (/ip/dns)
type IPDNS struct {
	routeros.SingleKind

	Servers             AddrSetField
	DynamicServers      AddrSetField
	AllowRemoteRequests routeros.BoolField
	CacheSize           routeros.Uint32Field
	CacheMaxTTL         routeros.DurationField
}

func (*IPDNS) ResourcePath() string { return "ip/dns" }

func (d *IPDNS) Fields() []routeros.FieldRef {
	return []routeros.FieldRef{
		{Description: &dnsServers, Accessor: &d.Servers},
		{Description: &dnsDynamicServers, Accessor: &d.DynamicServers},
		{Description: &dnsAllowRemoteRequests, Accessor: &d.AllowRemoteRequests},
		{Description: &dnsCacheSize, Accessor: &d.CacheSize},
		{Description: &dnsCacheMaxTTL, Accessor: &d.CacheMaxTTL},
	}
}

func (*IPDNS) IsDynamic() bool { return false }
