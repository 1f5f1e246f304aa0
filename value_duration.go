// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package routeros

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DurationCodec handles RouterOS time values.
//
// Both the unit notation ("1d2h30m", "500ms") and the positional notation
// ("01:30:00") are accepted, and may be mixed ("1d02:00:00"). Quantities are
// additive. Encoding always uses the unit notation and omits zero components.
type DurationCodec struct{}

func (DurationCodec) Decode(value string) (time.Duration, error) {
	var (
		days, hours, minutes, seconds, millis uint64
		positional                            []uint64
		number                                strings.Builder
		pendingM                              bool
	)

	take := func() (uint64, error) {
		s := number.String()
		number.Reset()
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, &DecodeError{Type: "duration", Value: value, Err: err}
		}
		return n, nil
	}

	// commitMinutes resolves a pending 'm' that turned out not to be "ms".
	commitMinutes := func() error {
		if !pendingM {
			return nil
		}
		pendingM = false
		n, err := take()
		if err != nil {
			return err
		}
		minutes = n
		return nil
	}

	for _, ch := range value {
		var err error
		switch {
		case ch >= '0' && ch <= '9':
			if err = commitMinutes(); err != nil {
				return 0, err
			}
			number.WriteRune(ch)
		case ch == 'm':
			if pendingM {
				return 0, &DecodeError{Type: "duration", Value: value}
			}
			pendingM = true
		case ch == 's':
			if pendingM {
				pendingM = false
				millis, err = take()
			} else {
				seconds, err = take()
			}
		case ch == ':':
			if err = commitMinutes(); err != nil {
				return 0, err
			}
			var n uint64
			n, err = take()
			positional = append(positional, n)
		case ch == 'h':
			if err = commitMinutes(); err != nil {
				return 0, err
			}
			hours, err = take()
		case ch == 'd':
			if err = commitMinutes(); err != nil {
				return 0, err
			}
			var n uint64
			n, err = take()
			days += n
		case ch == 'w':
			if err = commitMinutes(); err != nil {
				return 0, err
			}
			var weeks uint64
			weeks, err = take()
			days += weeks * 7
		default:
			return 0, &DecodeError{Type: "duration", Value: value}
		}
		if err != nil {
			return 0, err
		}
	}
	if err := commitMinutes(); err != nil {
		return 0, err
	}

	// Trailing digits after a colon are the seconds component.
	if number.Len() > 0 {
		if len(positional) == 0 {
			// A bare number is a count of seconds.
			n, err := take()
			if err != nil {
				return 0, err
			}
			seconds += n
		} else {
			n, err := take()
			if err != nil {
				return 0, err
			}
			positional = append(positional, n)
		}
	}

	// Right-align positional components onto seconds, minutes and hours.
	units := []*uint64{&seconds, &minutes, &hours}
	for i := 0; i < len(positional) && i < len(units); i++ {
		*units[i] += positional[len(positional)-1-i]
	}
	if len(positional) > len(units) {
		return 0, &DecodeError{Type: "duration", Value: value}
	}

	var total time.Duration
	for _, part := range []struct {
		n    uint64
		unit time.Duration
	}{
		{days, 24 * time.Hour},
		{hours, time.Hour},
		{minutes, time.Minute},
		{seconds, time.Second},
		{millis, time.Millisecond},
	} {
		if part.n > uint64(math.MaxInt64/part.unit) {
			return 0, &DecodeError{Type: "duration", Value: value, Err: strconv.ErrRange}
		}
		d := time.Duration(part.n) * part.unit
		if total > math.MaxInt64-d {
			return 0, &DecodeError{Type: "duration", Value: value, Err: strconv.ErrRange}
		}
		total += d
	}
	return total, nil
}

func (DurationCodec) Encode(value time.Duration, _ ValueFormat) string {
	if value < 0 {
		value = -value
	}
	ms := uint64(value / time.Millisecond)
	millis := ms % 1000
	secs := ms / 1000
	seconds := secs % 60
	minutes := (secs / 60) % 60
	hours := (secs / 3600) % 24
	days := secs / 86400

	var b strings.Builder
	write := func(n uint64, unit string) {
		if n > 0 {
			b.WriteString(strconv.FormatUint(n, 10))
			b.WriteString(unit)
		}
	}
	write(days, "d")
	write(hours, "h")
	write(minutes, "m")
	write(seconds, "s")
	write(millis, "ms")
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

func (DurationCodec) Equal(a, b time.Duration) bool {
	return a.Truncate(time.Millisecond) == b.Truncate(time.Millisecond)
}
