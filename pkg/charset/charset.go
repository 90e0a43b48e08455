// Package charset provides a small set-of-runes type used to describe the
// characters a font supports and the characters a language requires.
//
// A [Set] is a plain map and is treated as immutable once built. Its JSON
// form is a single string holding the sorted members, which keeps cached
// font repertoires compact and human-readable on disk.
package charset

import (
	"encoding/json"
	"slices"
	"strings"
)

// Set is a set of Unicode code points.
type Set map[rune]struct{}

// New builds a set from the given runes, dropping duplicates.
func New(rs ...rune) Set {
	s := make(Set, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

// FromString builds a set from every rune in str.
func FromString(str string) Set {
	return New([]rune(str)...)
}

// Add inserts r into s.
func (s Set) Add(r rune) { s[r] = struct{}{} }

// Has reports whether r is a member of s.
func (s Set) Has(r rune) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Difference returns the members of s that are not in other.
// Neither operand is modified.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for r := range s {
		if !other.Has(r) {
			out[r] = struct{}{}
		}
	}
	return out
}

// SubsetOf reports whether every member of s is also in other.
func (s Set) SubsetOf(other Set) bool {
	for r := range s {
		if !other.Has(r) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending code point order.
func (s Set) Sorted() []rune {
	out := make([]rune, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// String returns the sorted members concatenated. Equal sets always
// produce equal strings, so the result is usable as a map key.
func (s Set) String() string {
	return string(s.Sorted())
}

// MarshalJSON encodes the set as its canonical string.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a set previously written by MarshalJSON.
func (s *Set) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = FromString(str)
	return nil
}

// ParseExemplars parses a whitespace separated exemplar character list as
// found in CLDR-derived language data, e.g. "a b c {ch} ñ".
//
// Braces group multi-codepoint clusters; they are stripped and every code
// point inside contributes to the set.
func ParseExemplars(exemplars string) Set {
	s := make(Set)
	for _, tok := range strings.Fields(exemplars) {
		if len([]rune(tok)) > 1 {
			tok = strings.TrimSuffix(strings.TrimPrefix(tok, "{"), "}")
		}
		for _, r := range tok {
			s[r] = struct{}{}
		}
	}
	return s
}
