package popularity

import (
	"testing"

	"github.com/glyphgap/glyphgap/pkg/integrations/gfonts"
	"github.com/glyphgap/glyphgap/pkg/opportunity"
)

func TestRank(t *testing.T) {
	entries := []gfonts.Entry{
		{Family: "Lobster", Popularity: 120},
		{Family: "Roboto", Popularity: 1},
		{Family: "Tie B", Popularity: 50},
		{Family: "Tie A", Popularity: 50},
		{Family: "Roboto", Popularity: 300},
		{Family: "", Popularity: 0},
	}

	stats := Rank(entries)

	want := map[string]int{
		"Roboto":  0,
		"Tie B":   1,
		"Tie A":   2,
		"Lobster": 3,
	}
	if len(stats) != len(want) {
		t.Errorf("Rank() = %d families, want %d", len(stats), len(want))
	}
	for name, rank := range want {
		s, ok := stats[name]
		if !ok {
			t.Errorf("%s missing", name)
			continue
		}
		if s.Popularity != rank || s.Name != name {
			t.Errorf("%s = %+v, want rank %d", name, s, rank)
		}
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) = %v", got)
	}
}

func TestFill(t *testing.T) {
	stats := map[string]opportunity.FamilyStats{
		"Roboto": {Name: "Roboto", Popularity: 0},
	}
	n := Fill(stats, []string{"Roboto", "Obscure Sans", "Other"})

	if n != 2 {
		t.Errorf("Fill() = %d, want 2", n)
	}
	if stats["Roboto"].Popularity != 0 {
		t.Error("Fill() must not overwrite ranked families")
	}
	if got := stats["Obscure Sans"].Popularity; got != opportunity.DefaultPopularity {
		t.Errorf("unranked popularity = %d, want %d", got, opportunity.DefaultPopularity)
	}
}
