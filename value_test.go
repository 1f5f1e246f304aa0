// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"errors"
	"net"
	"net/netip"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFormat_String(t *testing.T) {
	tests := []struct {
		format ValueFormat
		want   string
	}{
		{FormatAPI, "api"},
		{FormatCLI, "cli"},
		{ValueFormat(7), "format(7)"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("ValueFormat(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

// TestBoolCodec verifies that both spellings decode and that the encoding
// depends on the output format
func TestBoolCodec(t *testing.T) {
	var c BoolCodec

	decodeTests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"no", false, false},
		{"true", true, false},
		{"false", false, false},
		{"maybe", false, true},
	}
	for _, tt := range decodeTests {
		got, err := c.Decode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Decode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Decode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	assert.Equal(t, "true", c.Encode(true, FormatAPI))
	assert.Equal(t, "false", c.Encode(false, FormatAPI))
	assert.Equal(t, "yes", c.Encode(true, FormatCLI))
	assert.Equal(t, "no", c.Encode(false, FormatCLI))

	for _, format := range []ValueFormat{FormatAPI, FormatCLI} {
		v, err := c.Decode(c.Encode(true, format))
		require.NoError(t, err)
		assert.True(t, v, "round trip in %s format", format)
	}
}

func TestUintCodec(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint16
		wantErr bool
	}{
		{"decimal", "4094", 4094, false},
		{"hex", "0xFFE", 4094, false},
		{"zero", "0", 0, false},
		{"max", "65535", 65535, false},
		{"overflow", "65536", 0, true},
		{"hex overflow", "0x10000", 0, true},
		{"negative", "-1", 0, true},
		{"garbage", "ten", 0, true},
	}

	var c Uint16Codec
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decode(tt.in)
			if tt.wantErr {
				var de *DecodeError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, tt.in, de.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "4094", c.Encode(4094, FormatCLI))
}

func TestUintCodecRangeError(t *testing.T) {
	var c Uint8Codec
	_, err := c.Decode("256")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("Decode(256) error = %v, want strconv.ErrRange", err)
	}
}

func TestIntCodec(t *testing.T) {
	var c Int8Codec

	v, err := c.Decode("-128")
	require.NoError(t, err)
	assert.Equal(t, int8(-128), v)

	v, err = c.Decode("0x7f")
	require.NoError(t, err)
	assert.Equal(t, int8(127), v)

	_, err = c.Decode("128")
	assert.Error(t, err)

	assert.Equal(t, "-5", c.Encode(-5, FormatAPI))
}

func TestUint64Codec(t *testing.T) {
	var c Uint64Codec

	v, err := c.Decode("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), v)

	_, err = c.Decode("0x10")
	assert.Error(t, err, "64-bit values are decimal only")
}

type testColor string

func (c testColor) IsValid() bool { return c == "red" || c == "green" }

func TestEnumCodec(t *testing.T) {
	var c EnumCodec[testColor]

	v, err := c.Decode("red")
	require.NoError(t, err)
	assert.Equal(t, testColor("red"), v)

	_, err = c.Decode("blue")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "enum", de.Type)
}

func TestDurationCodec_Decode(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "0s", want: 0},
		{in: "30", want: 30 * time.Second},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "01:30:00", want: 90 * time.Minute},
		{in: "10:00", want: 10 * time.Minute},
		{in: "500ms", want: 500 * time.Millisecond},
		{in: "1m30s", want: 90 * time.Second},
		{in: "2m500ms", want: 2*time.Minute + 500*time.Millisecond},
		{in: "1d02:03:04", want: 26*time.Hour + 3*time.Minute + 4*time.Second},
		{in: "1w2d", want: 9 * 24 * time.Hour},
		{in: "3w", want: 21 * 24 * time.Hour},
		{in: "1d2h3m4s5ms", want: 26*time.Hour + 3*time.Minute + 4*time.Second + 5*time.Millisecond},
		{in: "1:2:3:4", wantErr: true},
		{in: "5x", wantErr: true},
		{in: "1mm", wantErr: true},
		{in: "99999999999s", wantErr: true},
		{in: "106751d", want: 106751 * 24 * time.Hour},
		{in: "106752d", wantErr: true},
		{in: "3000000h", wantErr: true},
		{in: "4294967295d", wantErr: true},
		{in: "106751d23h47m16s854ms", want: 106751*24*time.Hour + 23*time.Hour + 47*time.Minute + 16*time.Second + 854*time.Millisecond},
		{in: "106751d23h47m16s855ms", wantErr: true},
	}

	var c DurationCodec
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := c.Decode(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Decode(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDurationCodec_Encode(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{90 * time.Minute, "1h30m"},
		{500 * time.Millisecond, "500ms"},
		{26*time.Hour + 4*time.Second, "1d2h4s"},
		{7 * 24 * time.Hour, "7d"},
		{-5 * time.Second, "5s"},
	}

	var c DurationCodec
	for _, tt := range tests {
		if got := c.Encode(tt.in, FormatCLI); got != tt.want {
			t.Errorf("Encode(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDurationCodec_RoundTrip(t *testing.T) {
	var c DurationCodec
	values := []time.Duration{
		time.Millisecond,
		59 * time.Second,
		23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond,
		400 * 24 * time.Hour,
		3*24*time.Hour + 5*time.Minute,
	}
	for _, d := range values {
		got, err := c.Decode(c.Encode(d, FormatAPI))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	assert.True(t, c.Equal(time.Second, time.Second+300*time.Microsecond))
}

func TestAddrCodec(t *testing.T) {
	var c AddrCodec

	v, err := c.Decode("2001:db8::1")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("2001:db8::1"), v)

	_, err = c.Decode("300.1.1.1")
	assert.Error(t, err)
}

func TestMACCodec(t *testing.T) {
	var c MACCodec

	v, err := c.Decode("dc:2c:6e:01:02:0a")
	require.NoError(t, err)
	assert.Equal(t, "DC:2C:6E:01:02:0A", c.Encode(v, FormatAPI))

	other, _ := net.ParseMAC("DC:2C:6E:01:02:0A")
	assert.True(t, c.Equal(v, other))

	_, err = c.Decode("dc:2c")
	assert.Error(t, err)
}

func TestPrefixCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "192.168.88.1/24", want: "192.168.88.1/24"},
		{in: "10.0.0.1", want: "10.0.0.1/32"},
		{in: "2001:db8::", want: "2001:db8::/128"},
		{in: "2001:db8::/64", want: "2001:db8::/64"},
		{in: "10.0.0.0/33", wantErr: true},
		{in: "10.0.0.0/8/8", wantErr: true},
		{in: "10.0.0.0/x", wantErr: true},
	}

	var c PrefixCodec
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := c.Decode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Encode(got, FormatAPI))
		})
	}
}

func TestIPWithInterfaceCodec(t *testing.T) {
	var c IPWithInterfaceCodec

	v, err := c.Decode("fe80::1%bridge1")
	require.NoError(t, err)
	assert.Equal(t, IPWithInterface{IP: netip.MustParseAddr("fe80::1"), Interface: "bridge1"}, v)
	assert.Equal(t, "fe80::1%bridge1", c.Encode(v, FormatAPI))

	_, err = c.Decode("fe80::1")
	assert.Error(t, err)
}

func TestIPOrInterfaceCodec(t *testing.T) {
	var c IPOrInterfaceCodec
	tests := []struct {
		in   string
		want IPOrInterface
	}{
		{"10.0.0.1", IPOrInterfaceFromAddr(netip.MustParseAddr("10.0.0.1"))},
		{"ether1", IPOrInterfaceFromName("ether1")},
		{"10.0.0.1%ether1", IPOrInterface{IP: netip.MustParseAddr("10.0.0.1"), Interface: "ether1"}},
	}
	for _, tt := range tests {
		got, err := c.Decode(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, c.Encode(got, FormatAPI))
	}
}

func TestSetCodec(t *testing.T) {
	var c SetCodec[uint16, Uint16Codec]

	v, err := c.Decode("30,10,20")
	require.NoError(t, err)
	assert.True(t, c.Equal(NewSet[uint16](10, 20, 30), v))
	assert.Equal(t, "10,20,30", c.Encode(v, FormatAPI))

	// round trip is order independent
	back, err := c.Decode(c.Encode(v, FormatAPI))
	require.NoError(t, err)
	assert.True(t, c.Equal(v, back))

	assert.False(t, c.Equal(NewSet[uint16](1), NewSet[uint16](2)))
	assert.False(t, c.Equal(NewSet[uint16](1), NewSet[uint16](1, 2)))

	_, err = c.Decode("1,x")
	assert.Error(t, err)
}

func TestSetOperations(t *testing.T) {
	s := NewSet("a")
	s.Add("b")
	clone := s.Clone()
	s.Remove("a")

	assert.False(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
	assert.True(t, clone.Contains("a"), "clone is independent")
}

func TestRangeCodec(t *testing.T) {
	var c RangeCodec[uint16, Uint16Codec]

	v, err := c.Decode("5")
	require.NoError(t, err)
	assert.Equal(t, Single[uint16](5), v)

	v, err = c.Decode("5-10")
	require.NoError(t, err)
	assert.Equal(t, Range[uint16]{Lo: 5, Hi: 10}, v)

	assert.Equal(t, "5", c.Encode(Single[uint16](5), FormatAPI))
	assert.Equal(t, "5-10", c.Encode(Range[uint16]{Lo: 5, Hi: 10}, FormatAPI))

	_, err = c.Decode("5-")
	assert.Error(t, err)
}

func TestAutoCodec(t *testing.T) {
	var c AutoCodec[uint16, Uint16Codec]

	v, err := c.Decode("auto")
	require.NoError(t, err)
	assert.True(t, v.IsAuto())
	assert.Equal(t, "auto", c.Encode(v, FormatAPI))

	v, err = c.Decode("1500")
	require.NoError(t, err)
	n, explicit := v.Get()
	assert.True(t, explicit)
	assert.Equal(t, uint16(1500), n)
	assert.Equal(t, "1500", c.Encode(v, FormatAPI))

	assert.True(t, c.Equal(Auto[uint16]{}, Auto[uint16]{}))
	assert.False(t, c.Equal(Auto[uint16]{}, AutoOf[uint16](0)))
}

func TestOptionalCodec(t *testing.T) {
	var c OptionalCodec[string, StringCodec]

	v, err := c.Decode("none")
	require.NoError(t, err)
	assert.True(t, v.IsNone())
	assert.Equal(t, "none", c.Encode(v, FormatCLI))

	v, err = c.Decode("bridge1")
	require.NoError(t, err)
	s, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, "bridge1", s)
	assert.True(t, c.Equal(v, Some("bridge1")))
}
