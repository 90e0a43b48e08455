// Package catalog builds the language and family catalogs from a checkout
// of the Google Fonts repository and the gflanguages data directory.
//
// Both catalogs are read from protocol buffer text format files via
// [textproto]. Family characters come from one exemplar font per family,
// read with [fontchars] and memoized per file.
//
// [textproto]: github.com/glyphgap/glyphgap/pkg/textproto
// [fontchars]: github.com/glyphgap/glyphgap/pkg/fontchars
package catalog

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/glyphgap/glyphgap/pkg/charset"
	"github.com/glyphgap/glyphgap/pkg/errors"
	"github.com/glyphgap/glyphgap/pkg/opportunity"
	"github.com/glyphgap/glyphgap/pkg/textproto"
)

// LanguageLoader reads every *.textproto language file in Dir.
type LanguageLoader struct {
	Dir    string
	Logger *log.Logger
}

// Load returns the languages keyed by code. Languages without base
// exemplar characters are left out since nothing can be missing for them.
// Unreadable files are logged and skipped. A missing directory, or one
// yielding no languages at all, is an INVALID_CATALOG error.
func (l *LanguageLoader) Load(ctx context.Context) (map[string]opportunity.Language, error) {
	if err := errors.ValidateDir(errors.ErrCodeInvalidCatalog, l.Dir); err != nil {
		return nil, err
	}
	logger := l.logger()

	paths, err := filepath.Glob(filepath.Join(l.Dir, "*.textproto"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "list %s", l.Dir)
	}
	slices.Sort(paths)

	langs := make(map[string]opportunity.Language, len(paths))
	noBase := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lang, err := readLanguage(path)
		if err != nil {
			logger.Warn("skipping language", "file", filepath.Base(path), "err", err)
			continue
		}
		if lang.Chars.Len() == 0 {
			noBase++
			continue
		}
		langs[lang.Code] = lang
	}

	if len(langs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "no languages with base exemplars in %s", l.Dir)
	}
	logger.Debug("loaded languages", "count", len(langs), "without_base", noBase)
	return langs, nil
}

func (l *LanguageLoader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

func readLanguage(path string) (opportunity.Language, error) {
	msg, err := textproto.ParseFile(path)
	if err != nil {
		return opportunity.Language{}, err
	}

	code := msg.String("id")
	if code == "" {
		code = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	pop, err := msg.Int("population")
	if err != nil {
		return opportunity.Language{}, err
	}

	var base string
	if ex := msg.Message("exemplar_chars"); ex != nil {
		base = ex.String("base")
	}
	return opportunity.Language{
		Code:       code,
		Population: pop,
		Chars:      charset.ParseExemplars(base),
	}, nil
}
