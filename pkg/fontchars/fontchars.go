// Package fontchars extracts the set of characters a font file maps.
//
// Only the font's preferred Unicode cmap subtable is consulted, as selected
// by go-text/typesetting. Collections (.ttc, .otc) contribute their first
// face.
package fontchars

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-text/typesetting/font"

	"github.com/glyphgap/glyphgap/pkg/charset"
	"github.com/glyphgap/glyphgap/pkg/errors"
)

// FromFile reads the font at path and returns every character it maps.
func FromFile(path string) (charset.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "read font")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		return fromCollection(data, path)
	}
	chars, err := FromBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse %s", path)
	}
	return chars, nil
}

// FromBytes parses a single TrueType or OpenType font.
func FromBytes(data []byte) (charset.Set, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return fromCmap(face.Cmap), nil
}

func fromCollection(data []byte, path string) (charset.Set, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse %s", path)
	}
	if len(faces) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFont, "empty font collection %s", path)
	}
	return fromCmap(faces[0].Cmap), nil
}

func fromCmap(cmap font.Cmap) charset.Set {
	chars := charset.New()
	if cmap == nil {
		return chars
	}
	it := cmap.Iter()
	for it.Next() {
		r, _ := it.Char()
		chars.Add(r)
	}
	return chars
}
