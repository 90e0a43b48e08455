package report

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/glyphgap/glyphgap/pkg/opportunity"
)

// LanguageInfo is the per-language detail shown in verbose reports.
type LanguageInfo struct {
	Code       string
	Name       string // English name, or "" if unknown
	Script     string // ISO 15924 code, or "" if unknown
	Population int64
	Multiplier float64
}

// Describe derives display details for a language from its code, which has
// the form language_Script (e.g. "yo_Latn").
func Describe(l opportunity.Language) LanguageInfo {
	info := LanguageInfo{
		Code:       l.Code,
		Population: l.Population,
		Multiplier: opportunity.ValueMultiplier(l.Population),
	}

	tag, err := language.Parse(strings.ReplaceAll(l.Code, "_", "-"))
	if err != nil {
		// private or unknown subtags; the suffix is still a script code
		if _, script, ok := strings.Cut(l.Code, "_"); ok && len(script) == 4 {
			info.Script = script
		}
		return info
	}

	if s, conf := tag.Script(); conf == language.Exact || conf == language.High {
		info.Script = s.String()
	}
	if base, conf := tag.Base(); conf != language.No {
		info.Name = display.English.Languages().Name(base)
	}
	return info
}
