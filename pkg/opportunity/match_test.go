package opportunity

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/glyphgap/glyphgap/pkg/charset"
)

func lang(code, chars string, pop int64) Language {
	return Language{Code: code, Population: pop, Chars: charset.FromString(chars)}
}

func family(name, chars string, fonts, axes int) Family {
	return Family{Name: name, NumFonts: fonts, NumAxes: axes, Chars: charset.FromString(chars)}
}

func langMap(ls ...Language) map[string]Language {
	m := make(map[string]Language, len(ls))
	for _, l := range ls {
		m[l.Code] = l
	}
	return m
}

func familyMap(fs ...Family) map[string]Family {
	m := make(map[string]Family, len(fs))
	for _, f := range fs {
		m[f.Name] = f
	}
	return m
}

func TestMatchSingleMissing(t *testing.T) {
	langs := langMap(lang("xx", "ABC", 0))
	fams := familyMap(family("Foo", "AB", 1, 0))

	res := Match(langs, fams, MatchOptions{MaxMissing: 1})

	want := map[Key][]string{{Family: "Foo", Missing: "C"}: {"xx"}}
	if !reflect.DeepEqual(res.Groups, want) {
		t.Errorf("Groups = %v, want %v", res.Groups, want)
	}
	if res.Processed != 1 || res.Skipped != 0 {
		t.Errorf("Processed/Skipped = %d/%d, want 1/0", res.Processed, res.Skipped)
	}
}

func TestMatchZeroThreshold(t *testing.T) {
	langs := langMap(lang("xx", "ABC", 0))
	fams := familyMap(family("Foo", "AB", 1, 0))

	res := Match(langs, fams, MatchOptions{MaxMissing: 0})
	if len(res.Groups) != 0 {
		t.Errorf("MaxMissing=0 produced %d groups, want none", len(res.Groups))
	}
}

func TestMatchFullySupportedIsNotAnOpportunity(t *testing.T) {
	langs := langMap(lang("xx", "AB", 0), lang("yy", "A", 0))
	fams := familyMap(family("Foo", "ABZ", 1, 0))

	res := Match(langs, fams, MatchOptions{MaxMissing: 5})
	if len(res.Groups) != 0 {
		t.Errorf("fully supported languages produced groups: %v", res.Groups)
	}
}

func TestMatchThresholdBounds(t *testing.T) {
	langs := langMap(
		lang("one", "ABC", 0),
		lang("two", "ABCD", 0),
		lang("three", "ABCDE", 0),
	)
	fams := familyMap(family("Foo", "AB", 1, 0))

	res := Match(langs, fams, MatchOptions{MaxMissing: 2})

	for key := range res.Groups {
		if n := len([]rune(key.Missing)); n == 0 || n > 2 {
			t.Errorf("group %v has %d missing, want 1..2", key, n)
		}
	}
	if len(res.Groups) != 2 {
		t.Errorf("got %d groups, want 2", len(res.Groups))
	}
}

func TestMatchGroupsByExactMissingSet(t *testing.T) {
	// aa and bb need different characters overall but miss the same one.
	langs := langMap(
		lang("aa", "ABX", 0),
		lang("bb", "CDX", 0),
		lang("cc", "ABY", 0),
	)
	fams := familyMap(family("Foo", "ABCD", 1, 0))

	res := Match(langs, fams, MatchOptions{MaxMissing: 1})

	want := map[Key][]string{
		{Family: "Foo", Missing: "X"}: {"aa", "bb"},
		{Family: "Foo", Missing: "Y"}: {"cc"},
	}
	if !reflect.DeepEqual(res.Groups, want) {
		t.Errorf("Groups = %v, want %v", res.Groups, want)
	}
}

func TestMatchMissingKeyIsSorted(t *testing.T) {
	langs := langMap(lang("xx", "zya", 0))
	fams := familyMap(family("Foo", "", 1, 0))

	res := Match(langs, fams, MatchOptions{MaxMissing: 3})
	if _, ok := res.Groups[Key{Family: "Foo", Missing: "ayz"}]; !ok {
		t.Errorf("expected sorted key \"ayz\", got %v", res.Groups)
	}
}

func TestMatchFilter(t *testing.T) {
	langs := langMap(lang("xx", "ABC", 0))
	fams := familyMap(
		family("Noto Sans", "AB", 1, 0),
		family("Noto Serif", "AB", 1, 0),
		family("Roboto", "AB", 1, 0),
	)

	tests := []struct {
		name          string
		filter        *regexp.Regexp
		wantProcessed int
		wantSkipped   int
	}{
		{"none", nil, 3, 0},
		{"substring", regexp.MustCompile("Noto"), 2, 1},
		{"anchored", regexp.MustCompile("^Rob"), 1, 2},
		{"noMatch", regexp.MustCompile("Inter"), 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Match(langs, fams, MatchOptions{MaxMissing: 1, Filter: tt.filter})
			if res.Processed != tt.wantProcessed || res.Skipped != tt.wantSkipped {
				t.Errorf("Processed/Skipped = %d/%d, want %d/%d",
					res.Processed, res.Skipped, tt.wantProcessed, tt.wantSkipped)
			}
			if len(res.Groups) != tt.wantProcessed {
				t.Errorf("got %d groups, want %d", len(res.Groups), tt.wantProcessed)
			}
		})
	}
}

func TestMatchDeterministic(t *testing.T) {
	langs := langMap(
		lang("aa", "ABX", 2_000_000_000),
		lang("bb", "CDX", 5_000),
		lang("cc", "ABY", 20_000_000),
	)
	fams := familyMap(
		family("Foo", "ABCD", 1, 0),
		family("Bar", "ABCDX", 3, 2),
	)
	stats := map[string]FamilyStats{"Foo": {Name: "Foo", Popularity: 3}, "Bar": {Name: "Bar", Popularity: 200}}

	run := func() []Opportunity {
		res := Match(langs, fams, MatchOptions{MaxMissing: 1})
		opps := ScoreAll(res, fams, stats, langs)
		Rank(opps)
		return opps
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\n%v\n%v", first, second)
	}
}
