package opportunity

import (
	"math"
)

// GlyphCost is the relative effort of drawing n new glyphs: a fixed
// baseline of 0.9 plus 0.1 per glyph.
func GlyphCost(n int) float64 {
	return 0.9 + 0.1*float64(n)
}

// CostMultiplier scales glyph cost by how many sources must be touched.
// Every axis combination of a variable family has to be redrawn, so cost
// grows exponentially with axes; static families pay a small increment per
// font.
func CostMultiplier(f Family) float64 {
	if f.NumAxes > 0 {
		m := 1 + math.Pow(2, float64(f.NumAxes-1))
		if f.NumFonts > 1 {
			m *= 1.5
		}
		return m
	}
	return 0.9 + 0.1*float64(f.NumFonts)
}

// BaseValue maps a popularity rank to the base value of improving the
// family. Thresholds are checked loosest first, so unranked families
// ([DefaultPopularity]) land in the lowest tier.
func BaseValue(popularity int) float64 {
	switch {
	case popularity > 500:
		return 1
	case popularity > 150:
		return 5
	case popularity > 50:
		return 10
	case popularity > 10:
		return 25
	default:
		return 50
	}
}

// ValueMultiplier maps a speaker population to a value multiplier.
func ValueMultiplier(population int64) float64 {
	switch {
	case population >= 1_000_000_000:
		return 10
	case population >= 100_000_000:
		return 5
	case population >= 10_000_000:
		return 1.5
	case population >= 1_000_000:
		return 1.1
	case population >= 100_000:
		return 1.01
	default:
		return 0.5
	}
}

// Score returns the value and cost of adding missing to family f so that it
// supports langs. Value compounds multiplicatively over languages.
func Score(f Family, stats FamilyStats, missing int, langs []Language) (value, cost float64) {
	value = BaseValue(stats.Popularity)
	for _, l := range langs {
		value *= ValueMultiplier(l.Population)
	}
	cost = GlyphCost(missing) * CostMultiplier(f)
	return value, cost
}

// ScoreAll turns matched groups into scored opportunities.
//
// Every family referenced by res must be present in families. A family
// without stats is scored as [DefaultPopularity]; callers are expected to
// fill stats beforehand so this never happens in practice.
func ScoreAll(res MatchResult, families map[string]Family, stats map[string]FamilyStats, langs map[string]Language) []Opportunity {
	out := make([]Opportunity, 0, len(res.Groups))
	for key, codes := range res.Groups {
		st, ok := stats[key.Family]
		if !ok {
			st = FamilyStats{Name: key.Family, Popularity: DefaultPopularity}
		}

		ls := make([]Language, 0, len(codes))
		for _, c := range codes {
			ls = append(ls, langs[c])
		}

		missing := []rune(key.Missing)
		value, cost := Score(families[key.Family], st, len(missing), ls)
		out = append(out, Opportunity{
			Family:     key.Family,
			Missing:    missing,
			Languages:  codes,
			Popularity: st.Popularity,
			Value:      value,
			Cost:       cost,
		})
	}
	return out
}
