// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"strings"
	"unicode/utf16"
)

// Lengths and capacities count UTF-16 code units, the characters of the
// legacy API.

// lengthWrap is where the legacy 16-bit length counter wraps around.
const lengthWrap = 1 << 16

// units returns the number of UTF-16 code units in s.
func units(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// prefix returns the longest prefix of s that has at most n code units.
// A character that needs a surrogate pair is never split.
func prefix(s string, n int) string {
	for i, r := range s {
		n -= utf16.RuneLen(r)
		if n < 0 {
			return s[:i]
		}
	}
	return s
}

// wrapLength applies the legacy length counter to a value found in a file.
// overflowed reports whether the value was affected.
func wrapLength(v string) (_ string, overflowed bool) {
	n := units(v)
	switch {
	case n < lengthWrap:
		return v, false
	case n == lengthWrap:
		return "", true
	default:
		return prefix(v, n%lengthWrap), true
	}
}

// fitValue truncates v so that it and a terminator fit in capacity units.
// truncated reports whether v did not fit.
func fitValue(v string, capacity int) (_ string, truncated bool) {
	if units(v)+1 <= capacity {
		return v, false
	}
	if capacity < 1 {
		return "", true
	}
	return prefix(v, capacity-1), true
}

// listBuffer returns the legacy list buffer for names: each name followed by
// a NUL, without the final extra NUL.
func listBuffer(names []string) string {
	sb := new(strings.Builder)
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte(0)
	}
	return sb.String()
}

// fitList truncates a list so that its buffer and two terminators fit in
// capacity units. It returns the names in the truncated buffer (the last one
// possibly cut short) and the buffer length in units.
func fitList(names []string, capacity int) (_ []string, n int, truncated bool) {
	buf := listBuffer(names)
	n = units(buf)
	if n+1 <= capacity {
		return names, n, false
	}
	if capacity < 2 {
		return nil, 0, true
	}
	buf = prefix(buf, capacity-2)
	return splitList(buf), units(buf), true
}

// splitList splits a list buffer into names. A final name without a NUL is
// included.
func splitList(buf string) []string {
	if buf == "" {
		return nil
	}
	names := strings.Split(buf, "\x00")
	if names[len(names)-1] == "" {
		names = names[:len(names)-1]
	}
	return names
}

// Buffer formats names the way the legacy list functions fill their output
// buffer: every name is terminated by a NUL and the list ends with an extra
// NUL.
func Buffer(names []string) string {
	return listBuffer(names) + "\x00"
}
