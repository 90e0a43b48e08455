package opportunity

import (
	"cmp"
	"slices"
)

// Rank sorts opps in place: highest value/cost first, ties broken toward
// the more popular family. Any remaining tie is broken by family name and
// then missing characters so the order never depends on input order.
func Rank(opps []Opportunity) {
	slices.SortStableFunc(opps, compare)
}

func compare(a, b Opportunity) int {
	if c := cmp.Compare(b.Ratio(), a.Ratio()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Popularity, b.Popularity); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Family, b.Family); c != 0 {
		return c
	}
	return cmp.Compare(a.MissingString(), b.MissingString())
}
