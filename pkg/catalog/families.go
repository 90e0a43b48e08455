package catalog

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/glyphgap/glyphgap/pkg/cache"
	"github.com/glyphgap/glyphgap/pkg/charset"
	"github.com/glyphgap/glyphgap/pkg/errors"
	"github.com/glyphgap/glyphgap/pkg/fontchars"
	"github.com/glyphgap/glyphgap/pkg/textproto"
)

// LicenseDirs are the top-level corpus directories holding families.
var LicenseDirs = []string{"ofl", "ufl", "apache"}

// MetadataFile is the per-family descriptor name.
const MetadataFile = "METADATA.pb"

// FamilyMeta is what a family descriptor says about the family.
type FamilyMeta struct {
	Name         string `json:"name"`
	License      string `json:"license"`
	Dir          string `json:"dir"`
	ExemplarFile string `json:"exemplar_file"`
	NumFonts     int    `json:"num_fonts"`
	NumAxes      int    `json:"num_axes"`
}

// ExemplarPath is the location of the exemplar font file.
func (m FamilyMeta) ExemplarPath() string {
	return filepath.Join(m.Dir, m.ExemplarFile)
}

// ScanError records a descriptor that could not be used.
type ScanError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Scan is the result of walking a corpus.
type Scan struct {
	Families []FamilyMeta `json:"families"`
	Errors   []ScanError  `json:"errors,omitempty"`
}

// Names returns the family names in scan order.
func (s *Scan) Names() []string {
	names := make([]string, len(s.Families))
	for i, f := range s.Families {
		names[i] = f.Name
	}
	return names
}

// FamilyLoader reads family descriptors and exemplar fonts from a corpus.
type FamilyLoader struct {
	Root   string
	Memo   *cache.Memo
	Logger *log.Logger
}

// Scan walks the license directories for descriptors. A missing license
// directory is logged; the corpus is INVALID_CORPUS only when none exist.
// Malformed descriptors are recorded in Scan.Errors and left out. When two
// descriptors claim the same family name the first one in walk order wins.
func (l *FamilyLoader) Scan(ctx context.Context) (*Scan, error) {
	if err := errors.ValidateDir(errors.ErrCodeInvalidCorpus, l.Root); err != nil {
		return nil, err
	}
	logger := l.logger()

	scan := &Scan{}
	seen := make(map[string]string)
	found := 0
	for _, license := range LicenseDirs {
		dir := filepath.Join(l.Root, license)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Warn("not a directory", "path", dir)
			continue
		}
		found++

		paths, err := findDescriptors(ctx, dir)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			meta, err := readFamily(path, license)
			if err != nil {
				logger.Warn("unable to load descriptor", "path", path, "err", errors.UserMessage(err))
				scan.Errors = append(scan.Errors, ScanError{Path: path, Message: errors.UserMessage(err)})
				continue
			}
			if prev, dup := seen[meta.Name]; dup {
				logger.Debug("duplicate family", "family", meta.Name, "kept", prev, "ignored", path)
				continue
			}
			seen[meta.Name] = path
			scan.Families = append(scan.Families, meta)
		}
	}

	if found == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCorpus,
			"no license directories (%s) under %s", strings.Join(LicenseDirs, ", "), l.Root)
	}
	logger.Debug("scanned corpus", "families", len(scan.Families), "errors", len(scan.Errors))
	return scan, nil
}

// Chars returns the characters mapped by the family's exemplar font.
// Results are memoized under the file's path, size and modification time.
func (l *FamilyLoader) Chars(ctx context.Context, meta FamilyMeta) (charset.Set, error) {
	path := meta.ExemplarPath()
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "exemplar font for %s", meta.Name)
	}

	if l.Memo == nil {
		return fontchars.FromFile(path)
	}

	key := cache.Key("chars", path, info.Size(), info.ModTime().UnixNano())
	var chars charset.Set
	_, err = l.Memo.GetOrCompute(ctx, key, cache.TTLChars, &chars, func() (any, error) {
		l.logger().Debug("reading cmap", "path", path)
		return fontchars.FromFile(path)
	})
	if err != nil {
		return nil, err
	}
	return chars, nil
}

func (l *FamilyLoader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

// findDescriptors returns every descriptor below dir in lexical order,
// ignoring hidden directories.
func findDescriptors(ctx context.Context, dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == MetadataFile {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCorpus, err, "walk %s", dir)
	}
	slices.Sort(paths)
	return paths, nil
}

func readFamily(path, license string) (FamilyMeta, error) {
	msg, err := textproto.ParseFile(path)
	if err != nil {
		return FamilyMeta{}, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "parse descriptor")
	}

	name := msg.String("name")
	if name == "" {
		return FamilyMeta{}, errors.New(errors.ErrCodeInvalidMetadata, "%s: family has no name", path)
	}
	fonts := msg.Messages("fonts")
	exemplar, err := exemplarFont(fonts)
	if err != nil {
		return FamilyMeta{}, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "%s", name)
	}

	return FamilyMeta{
		Name:         name,
		License:      license,
		Dir:          filepath.Dir(path),
		ExemplarFile: exemplar,
		NumFonts:     len(fonts),
		NumAxes:      msg.Count("axes"),
	}, nil
}
