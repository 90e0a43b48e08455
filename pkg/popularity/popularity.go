// Package popularity turns a popularity feed into per-family ranks.
package popularity

import (
	"cmp"
	"slices"

	"github.com/glyphgap/glyphgap/pkg/integrations/gfonts"
	"github.com/glyphgap/glyphgap/pkg/opportunity"
)

// Rank assigns dense ranks starting at 0 to the feed entries, sorted
// ascending by their popularity metric. Families sharing a metric keep feed
// order among themselves. A family listed twice keeps its best rank.
func Rank(entries []gfonts.Entry) map[string]opportunity.FamilyStats {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b gfonts.Entry) int {
		return cmp.Compare(a.Popularity, b.Popularity)
	})

	stats := make(map[string]opportunity.FamilyStats, len(sorted))
	rank := 0
	for _, e := range sorted {
		if _, seen := stats[e.Family]; seen || e.Family == "" {
			continue
		}
		stats[e.Family] = opportunity.FamilyStats{Name: e.Family, Popularity: rank}
		rank++
	}
	return stats
}

// Fill gives every named family without stats the default rank, so that
// each family ends up with exactly one entry. It returns how many were
// filled in.
func Fill(stats map[string]opportunity.FamilyStats, families []string) int {
	filled := 0
	for _, name := range families {
		if _, ok := stats[name]; ok {
			continue
		}
		stats[name] = opportunity.FamilyStats{Name: name, Popularity: opportunity.DefaultPopularity}
		filled++
	}
	return filled
}
