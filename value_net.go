// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"bytes"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// AddrCodec handles IPv4 and IPv6 addresses.
type AddrCodec struct{}

func (AddrCodec) Decode(value string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return netip.Addr{}, &DecodeError{Type: "ip address", Value: value, Err: err}
	}
	return addr, nil
}

func (AddrCodec) Encode(value netip.Addr, _ ValueFormat) string { return value.String() }

func (AddrCodec) Equal(a, b netip.Addr) bool { return a == b }

// MACCodec handles 48-bit hardware addresses. RouterOS prints them upper-case.
type MACCodec struct{}

func (MACCodec) Decode(value string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(value)
	if err != nil {
		return nil, &DecodeError{Type: "mac address", Value: value, Err: err}
	}
	return mac, nil
}

func (MACCodec) Encode(value net.HardwareAddr, _ ValueFormat) string {
	return strings.ToUpper(value.String())
}

func (MACCodec) Equal(a, b net.HardwareAddr) bool { return bytes.Equal(a, b) }

// PrefixCodec handles "address/length" network values. A bare address gets
// the full-length prefix of its family.
type PrefixCodec struct{}

func (PrefixCodec) Decode(value string) (netip.Prefix, error) {
	parts := strings.Split(value, "/")
	if len(parts) > 2 {
		return netip.Prefix{}, &DecodeError{Type: "ip prefix", Value: value}
	}
	addr, err := netip.ParseAddr(parts[0])
	if err != nil {
		return netip.Prefix{}, &DecodeError{Type: "ip prefix", Value: value, Err: err}
	}
	bits := addr.BitLen()
	if len(parts) == 2 {
		bits, err = strconv.Atoi(parts[1])
		if err != nil {
			return netip.Prefix{}, &DecodeError{Type: "ip prefix", Value: value, Err: err}
		}
	}
	prefix := netip.PrefixFrom(addr, bits)
	if !prefix.IsValid() {
		return netip.Prefix{}, &DecodeError{Type: "ip prefix", Value: value}
	}
	return prefix, nil
}

func (PrefixCodec) Encode(value netip.Prefix, _ ValueFormat) string { return value.String() }

func (PrefixCodec) Equal(a, b netip.Prefix) bool { return a == b }

// IPWithInterface is a link-scoped address such as "fe80::1%ether1".
type IPWithInterface struct {
	IP        netip.Addr
	Interface string
}

func (v IPWithInterface) String() string {
	return v.IP.String() + "%" + v.Interface
}

func parseIPWithInterface(value string) (IPWithInterface, error) {
	pos := strings.IndexByte(value, '%')
	if pos < 0 {
		return IPWithInterface{}, &DecodeError{Type: "ip%interface", Value: value}
	}
	addr, err := netip.ParseAddr(value[:pos])
	if err != nil {
		return IPWithInterface{}, &DecodeError{Type: "ip%interface", Value: value, Err: err}
	}
	return IPWithInterface{IP: addr, Interface: value[pos+1:]}, nil
}

// IPWithInterfaceCodec handles "ip%interface" values.
type IPWithInterfaceCodec struct{}

func (IPWithInterfaceCodec) Decode(value string) (IPWithInterface, error) {
	return parseIPWithInterface(value)
}

func (IPWithInterfaceCodec) Encode(value IPWithInterface, _ ValueFormat) string {
	return value.String()
}

func (IPWithInterfaceCodec) Equal(a, b IPWithInterface) bool { return a == b }

// IPOrInterface is a gateway-style value: an address, an interface name, or both.
// IP is invalid when only an interface is given; Interface is empty when only
// an address is given.
type IPOrInterface struct {
	IP        netip.Addr
	Interface string
}

// IPOrInterfaceFromAddr returns a value holding only an address.
func IPOrInterfaceFromAddr(addr netip.Addr) IPOrInterface {
	return IPOrInterface{IP: addr}
}

// IPOrInterfaceFromName returns a value holding only an interface name.
func IPOrInterfaceFromName(name string) IPOrInterface {
	return IPOrInterface{Interface: name}
}

func (v IPOrInterface) String() string {
	switch {
	case v.IP.IsValid() && v.Interface != "":
		return v.IP.String() + "%" + v.Interface
	case v.IP.IsValid():
		return v.IP.String()
	default:
		return v.Interface
	}
}

// IPOrInterfaceCodec tries ip%interface, then a bare address, and falls
// back to treating the value as an interface name.
type IPOrInterfaceCodec struct{}

func (IPOrInterfaceCodec) Decode(value string) (IPOrInterface, error) {
	if v, err := parseIPWithInterface(value); err == nil {
		return IPOrInterface(v), nil
	}
	if addr, err := netip.ParseAddr(value); err == nil {
		return IPOrInterface{IP: addr}, nil
	}
	return IPOrInterface{Interface: value}, nil
}

func (IPOrInterfaceCodec) Encode(value IPOrInterface, _ ValueFormat) string {
	return value.String()
}

func (IPOrInterfaceCodec) Equal(a, b IPOrInterface) bool { return a == b }
