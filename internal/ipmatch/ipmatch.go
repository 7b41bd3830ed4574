// Package ipmatch implements IPv4 address parsing and block-pattern matching.
// Patterns are either a literal dotted-quad address or a CIDR range
// (address/prefix, prefix 0-32). Malformed input never panics; it simply
// fails the match, so a corrupt stored pattern can never match everything.
package ipmatch

import (
	"strconv"
	"strings"
)

// ParseAddress converts a dotted-quad IPv4 string into its 32-bit integer
// form. The second return value is false for anything that is not exactly
// four decimal octets in [0,255].
func ParseAddress(s string) (uint32, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, false
	}

	var result uint32
	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 255 {
			return 0, false
		}
		result = result<<8 | uint32(num)
	}
	return result, true
}

// Mask returns the network mask for the given prefix length.
// Mask(0) is 0 and Mask(32) is all ones.
func Mask(prefix int) uint32 {
	if prefix <= 0 {
		return 0
	}
	if prefix >= 32 {
		return 0xFFFFFFFF
	}
	return 0xFFFFFFFF << (32 - prefix)
}

// Matches reports whether addr falls under pattern. A pattern without a
// slash only matches the identical address; a CIDR pattern matches when
// both share the top prefix bits.
func Matches(addr, pattern string) bool {
	if !strings.Contains(pattern, "/") {
		if _, ok := ParseAddress(addr); !ok {
			return false
		}
		if _, ok := ParseAddress(pattern); !ok {
			return false
		}
		return addr == pattern
	}

	rangePart, bitsPart, _ := strings.Cut(pattern, "/")
	prefix, err := strconv.Atoi(bitsPart)
	if err != nil || prefix < 0 || prefix > 32 {
		return false
	}

	addrLong, ok := ParseAddress(addr)
	if !ok {
		return false
	}
	rangeLong, ok := ParseAddress(rangePart)
	if !ok {
		return false
	}

	mask := Mask(prefix)
	return addrLong&mask == rangeLong&mask
}

// ValidPattern reports whether s is a syntactically valid block pattern,
// either a plain IPv4 address or an address/prefix range. Rules with
// invalid patterns are rejected at write time so lookups never have to
// deal with them.
func ValidPattern(s string) bool {
	if !strings.Contains(s, "/") {
		_, ok := ParseAddress(s)
		return ok
	}

	rangePart, bitsPart, _ := strings.Cut(s, "/")
	prefix, err := strconv.Atoi(bitsPart)
	if err != nil || prefix < 0 || prefix > 32 {
		return false
	}
	_, ok := ParseAddress(rangePart)
	return ok
}
