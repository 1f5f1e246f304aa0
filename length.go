// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"io"
)

// AppendLength appends the API length prefix for n to b using the shortest form.
func AppendLength(b []byte, n uint32) []byte {
	switch {
	case n < 0x80:
		return append(b, byte(n))
	case n < 0x4000:
		n |= 0x8000
		return append(b, byte(n>>8), byte(n))
	case n < 0x200000:
		n |= 0xC00000
		return append(b, byte(n>>16), byte(n>>8), byte(n))
	case n < 0x10000000:
		n |= 0xE0000000
		return append(b, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	default:
		return append(b, 0xF0, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
}

// EncodeLength returns the API length prefix for n.
func EncodeLength(n uint32) []byte {
	return AppendLength(make([]byte, 0, 5), n)
}

// ReadLength reads one length prefix from r.
func ReadLength(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}
	first := buf[0]

	var extra int
	var n uint32
	switch {
	case first&0x80 == 0x00:
		return uint32(first), nil
	case first&0xC0 == 0x80:
		extra, n = 1, uint32(first&0x3F)
	case first&0xE0 == 0xC0:
		extra, n = 2, uint32(first&0x1F)
	case first&0xF0 == 0xE0:
		extra, n = 3, uint32(first&0x0F)
	case first == 0xF0:
		extra, n = 4, 0
	default:
		return 0, ErrUnsupportedLength
	}

	if _, err := io.ReadFull(r, buf[:extra]); err != nil {
		return 0, err
	}
	for _, b := range buf[:extra] {
		n = n<<8 | uint32(b)
	}
	return n, nil
}
