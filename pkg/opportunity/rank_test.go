package opportunity

import (
	"testing"
)

func TestRankByRatioThenPopularity(t *testing.T) {
	opps := []Opportunity{
		{Family: "Low", Value: 1, Cost: 1, Popularity: 0},
		{Family: "TieUnpopular", Value: 10, Cost: 2, Popularity: 300},
		{Family: "High", Value: 50, Cost: 1, Popularity: 900},
		{Family: "TiePopular", Value: 5, Cost: 1, Popularity: 4},
	}

	Rank(opps)

	want := []string{"High", "TiePopular", "TieUnpopular", "Low"}
	for i, name := range want {
		if opps[i].Family != name {
			t.Errorf("position %d = %s, want %s", i, opps[i].Family, name)
		}
	}
}

func TestRankIsTotal(t *testing.T) {
	a := Opportunity{Family: "Foo", Missing: []rune("B"), Value: 1, Cost: 1}
	b := Opportunity{Family: "Foo", Missing: []rune("A"), Value: 1, Cost: 1}
	c := Opportunity{Family: "Bar", Missing: []rune("Z"), Value: 1, Cost: 1}

	x := []Opportunity{a, b, c}
	y := []Opportunity{c, a, b}
	Rank(x)
	Rank(y)

	for i := range x {
		if x[i].Key() != y[i].Key() {
			t.Fatalf("order depends on input: %v vs %v", x[i].Key(), y[i].Key())
		}
	}
	if x[0].Family != "Bar" || x[1].MissingString() != "A" {
		t.Errorf("unexpected tie order: %v", x)
	}
}

func TestRankEmpty(t *testing.T) {
	var opps []Opportunity
	Rank(opps) // must not panic
}
