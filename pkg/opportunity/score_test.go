package opportunity

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestGlyphCost(t *testing.T) {
	if got := GlyphCost(1); !approx(got, 1.0) {
		t.Errorf("GlyphCost(1) = %v, want 1.0", got)
	}
	prev := GlyphCost(0)
	if prev <= 0 {
		t.Fatalf("GlyphCost(0) = %v, want > 0", prev)
	}
	for n := 1; n < 50; n++ {
		c := GlyphCost(n)
		if c <= prev {
			t.Fatalf("GlyphCost not strictly increasing at n=%d: %v <= %v", n, c, prev)
		}
		prev = c
	}
}

func TestCostMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		fonts int
		axes  int
		want  float64
	}{
		{"singleStatic", 1, 0, 1.0},
		{"manyStatic", 18, 0, 2.7},
		{"oneAxisOneFont", 1, 1, 2},
		{"oneAxisTwoFonts", 2, 1, 3},
		{"threeAxesTwoFonts", 2, 3, 7.5},
		{"threeAxesOneFont", 1, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CostMultiplier(Family{NumFonts: tt.fonts, NumAxes: tt.axes})
			if !approx(got, tt.want) {
				t.Errorf("CostMultiplier(fonts=%d, axes=%d) = %v, want %v", tt.fonts, tt.axes, got, tt.want)
			}
		})
	}
}

func TestBaseValue(t *testing.T) {
	tests := []struct {
		rank int
		want float64
	}{
		{0, 50},
		{10, 50},
		{11, 25},
		{50, 25},
		{51, 10},
		{150, 10},
		{151, 5},
		{500, 5},
		{501, 1},
		{DefaultPopularity, 1},
	}

	for _, tt := range tests {
		if got := BaseValue(tt.rank); got != tt.want {
			t.Errorf("BaseValue(%d) = %v, want %v", tt.rank, got, tt.want)
		}
	}
}

func TestValueMultiplier(t *testing.T) {
	tests := []struct {
		pop  int64
		want float64
	}{
		{1_500_000_000, 10},
		{1_000_000_000, 10},
		{999_999_999, 5},
		{100_000_000, 5},
		{10_000_000, 1.5},
		{1_000_000, 1.1},
		{100_000, 1.01},
		{50_000, 0.5},
		{0, 0.5},
	}

	for _, tt := range tests {
		if got := ValueMultiplier(tt.pop); got != tt.want {
			t.Errorf("ValueMultiplier(%d) = %v, want %v", tt.pop, got, tt.want)
		}
	}
}

func TestScoreCompoundsLanguages(t *testing.T) {
	f := Family{Name: "Foo", NumFonts: 1}
	st := FamilyStats{Name: "Foo", Popularity: 5} // base 50
	langs := []Language{
		{Code: "a", Population: 2_000_000_000}, // x10
		{Code: "b", Population: 200_000_000},   // x5
	}

	value, cost := Score(f, st, 1, langs)
	if !approx(value, 2500) {
		t.Errorf("value = %v, want 2500", value)
	}
	if !approx(cost, 1.0) {
		t.Errorf("cost = %v, want 1.0", cost)
	}
}

func TestScoreAllUsesDefaultPopularity(t *testing.T) {
	langs := langMap(lang("xx", "ABC", 50_000))
	fams := familyMap(family("Foo", "AB", 1, 0))
	res := Match(langs, fams, MatchOptions{MaxMissing: 1})

	opps := ScoreAll(res, fams, nil, langs)
	if len(opps) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(opps))
	}
	o := opps[0]
	if o.Popularity != DefaultPopularity {
		t.Errorf("Popularity = %d, want %d", o.Popularity, DefaultPopularity)
	}
	// base 1 for unranked, x0.5 for a small population
	if !approx(o.Value, 0.5) {
		t.Errorf("Value = %v, want 0.5", o.Value)
	}
	if o.Cost <= 0 {
		t.Errorf("Cost = %v, want > 0", o.Cost)
	}
	if o.MissingString() != "C" {
		t.Errorf("Missing = %q, want %q", o.MissingString(), "C")
	}
}
