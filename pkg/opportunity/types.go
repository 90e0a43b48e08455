package opportunity

import (
	"github.com/glyphgap/glyphgap/pkg/charset"
)

// DefaultPopularity is the rank given to families absent from the
// popularity feed. It sorts after every ranked family.
const DefaultPopularity = 9999

// Language is a written language and the characters it minimally requires.
type Language struct {
	Code       string      `json:"code"`       // e.g. "en_Latn"
	Population int64       `json:"population"` // speakers, >= 0
	Chars      charset.Set `json:"chars"`      // base exemplar characters
}

// Family is a font family and the characters its exemplar font covers.
type Family struct {
	Name     string      `json:"name"`
	NumFonts int         `json:"num_fonts"` // static instances, >= 1
	NumAxes  int         `json:"num_axes"`  // variation axes, >= 0
	Chars    charset.Set `json:"chars"`
}

// FamilyStats carries per-family popularity. Popularity is a dense rank
// starting at 0 for the most popular family.
type FamilyStats struct {
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
}

// Key identifies an opportunity group. Missing holds the sorted missing
// characters so that equal deficiencies compare equal.
type Key struct {
	Family  string
	Missing string
}

// Opportunity is a family plus the exact set of characters that, once
// added, would let it support every language in Languages.
type Opportunity struct {
	Family     string
	Missing    []rune   // sorted ascending
	Languages  []string // sorted ascending
	Popularity int
	Value      float64
	Cost       float64
}

// Key returns the grouping key of o.
func (o Opportunity) Key() Key {
	return Key{Family: o.Family, Missing: string(o.Missing)}
}

// Ratio returns value per unit of cost. Cost is always positive for
// opportunities produced by [Score].
func (o Opportunity) Ratio() float64 {
	return o.Value / o.Cost
}

// MissingString returns the missing characters concatenated in order.
func (o Opportunity) MissingString() string {
	return string(o.Missing)
}
