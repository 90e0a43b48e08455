package opportunity

import (
	"maps"
	"regexp"
	"slices"
)

// MatchOptions controls which family/language pairs count as opportunities.
type MatchOptions struct {
	// MaxMissing is the largest number of missing characters a pair may
	// have and still be an opportunity. Zero is valid and matches nothing.
	MaxMissing int

	// Filter, if set, skips families whose name it does not match.
	// The pattern is searched anywhere in the name.
	Filter *regexp.Regexp
}

// MatchResult is the output of [Match].
type MatchResult struct {
	// Groups maps each (family, missing characters) key to the sorted codes
	// of every language with exactly that deficiency.
	Groups map[Key][]string

	// Processed counts families that passed the filter.
	Processed int

	// Skipped counts families excluded by the filter.
	Skipped int
}

// Match finds every family/language pair whose missing character count is
// in (0, opts.MaxMissing] and groups the languages by exact missing set.
//
// A language whose characters are fully covered is never an opportunity.
// Languages with different requirements share a group whenever their
// missing characters against the family coincide.
func Match(langs map[string]Language, families map[string]Family, opts MatchOptions) MatchResult {
	res := MatchResult{Groups: make(map[Key][]string)}

	for _, name := range slices.Sorted(maps.Keys(families)) {
		if opts.Filter != nil && !opts.Filter.MatchString(name) {
			res.Skipped++
			continue
		}
		res.Processed++

		fam := families[name]
		for _, code := range slices.Sorted(maps.Keys(langs)) {
			missing := langs[code].Chars.Difference(fam.Chars)
			if n := missing.Len(); n == 0 || n > opts.MaxMissing {
				continue
			}
			key := Key{Family: name, Missing: missing.String()}
			res.Groups[key] = append(res.Groups[key], code)
		}
	}

	// codes were appended in sorted order; keep it explicit for callers
	// that build groups by hand
	for k := range res.Groups {
		slices.Sort(res.Groups[k])
	}
	return res
}
