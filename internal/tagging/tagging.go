// Package tagging implements the fixed-width tag bitset shared by clients
// (tag membership) and views (tag-set membership). Bit positions correspond
// 1:1 to configured tags.
package tagging

import (
	"fmt"
	"strings"
)

// MaxTags is the number of addressable tag bits.
const MaxTags = 32

// Set is a tag bitset. The zero value is the empty set.
type Set uint32

// WithBit returns s with the tag at the given bit position added.
// Positions outside [0, MaxTags) are ignored.
func (s Set) WithBit(pos int) Set {
	if pos < 0 || pos >= MaxTags {
		return s
	}
	return s | 1<<pos
}

// HasBit reports whether the tag at the given bit position is set.
func (s Set) HasBit(pos int) bool {
	return pos >= 0 && pos < MaxTags && s&(1<<pos) != 0
}

// Union returns the union of s and other.
func (s Set) Union(other Set) Set {
	return s | other
}

// Intersects reports whether s and other share at least one tag.
func (s Set) Intersects(other Set) bool {
	return s&other != 0
}

// Contains reports whether every tag in other is also in s.
func (s Set) Contains(other Set) bool {
	return s&other == other
}

// Minus returns s with every tag in other removed.
func (s Set) Minus(other Set) Set {
	return s &^ other
}

// None reports whether the set is empty.
func (s Set) None() bool {
	return s == 0
}

// Bits returns the raw bit pattern, used when publishing properties.
func (s Set) Bits() uint32 {
	return uint32(s)
}

func (s Set) String() string {
	if s == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for pos := 0; pos < MaxTags; pos++ {
		if s.HasBit(pos) {
			if !first {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", pos)
			first = false
		}
	}
	b.WriteByte('}')
	return b.String()
}
