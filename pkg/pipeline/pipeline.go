// Package pipeline runs the glyph expansion analysis end to end.
//
// The pipeline has four stages:
//
//  1. Languages: read the language catalog (memoized)
//  2. Families: scan the corpus descriptors (memoized) and read the
//     exemplar cmap of every family that passes the name filter (memoized
//     per font file)
//  3. Popularity: rank families from the popularity feed, a saved copy of
//     it, or not at all; unranked families get the default rank
//  4. Match and score: find, score and rank the opportunities
//
// # Usage
//
//	runner := pipeline.NewRunner(c, gfonts.NewClient(c, "", cache.TTLPopularity), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    CorpusRoot:   "/src/fonts",
//	    LanguagesDir: "/src/gflanguages/Lib/gflanguages/data/languages",
//	    MaxMissing:   1,
//	})
//
// A family whose descriptor or exemplar font cannot be read is left out and
// counted in [Stats]; only an unusable corpus or language catalog fails the
// run. A popularity feed that cannot be fetched is logged and replaced by
// default ranks.
package pipeline

import (
	"path/filepath"
	"regexp"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glyphgap/glyphgap/pkg/errors"
	"github.com/glyphgap/glyphgap/pkg/opportunity"
)

// DefaultMaxMissing is the default missing-character threshold.
const DefaultMaxMissing = 1

// Popularity sources reported in [Stats].
const (
	PopularityLive     = "live"
	PopularityCached   = "cached"
	PopularityFile     = "file"
	PopularityOffline  = "offline"
	PopularityDefaults = "defaults"
)

// Options configures one analysis run.
type Options struct {
	CorpusRoot   string `json:"corpus_root"`
	LanguagesDir string `json:"languages_dir,omitempty"` // default: derived from CorpusRoot
	MaxMissing   int    `json:"max_missing"`
	FamilyFilter string `json:"family_filter,omitempty"`

	PopularityFile string `json:"popularity_file,omitempty"` // read ranks from a saved feed
	Offline        bool   `json:"offline,omitempty"`         // skip the popularity fetch
	Refresh        bool   `json:"refresh,omitempty"`         // ignore cached catalogs and feed

	// CatalogTTL bounds how long memoized catalogs are reused.
	// Zero selects the defaults in package cache.
	CatalogTTL time.Duration `json:"catalog_ttl,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	filter    *regexp.Regexp
	validated bool
}

// DefaultLanguagesDir is where a gflanguages checkout next to the corpus
// keeps its language files.
func DefaultLanguagesDir(corpusRoot string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(corpusRoot)),
		"gflanguages", "Lib", "gflanguages", "data", "languages")
}

// ValidateAndSetDefaults checks the options and fills in derived defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidatePath(o.CorpusRoot); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCorpus, err, "corpus root")
	}
	if err := errors.ValidateMaxMissing(o.MaxMissing); err != nil {
		return err
	}
	re, err := errors.CompileFamilyFilter(o.FamilyFilter)
	if err != nil {
		return err
	}
	o.filter = re
	if o.LanguagesDir == "" {
		o.LanguagesDir = DefaultLanguagesDir(o.CorpusRoot)
	}
	o.validated = true
	return nil
}

// Result holds the outcome of a run.
type Result struct {
	// Opportunities in rank order.
	Opportunities []opportunity.Opportunity

	// Languages is the language catalog, for report details.
	Languages map[string]opportunity.Language

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes what a run looked at and left out.
type Stats struct {
	Languages        int    // languages with base exemplars
	Families         int    // families with a usable descriptor
	Processed        int    // families compared against the languages
	FilterSkipped    int    // families excluded by the name filter
	MetadataErrors   int    // descriptors that could not be used
	FontErrors       int    // exemplar fonts that could not be read
	MaxMissing       int    // threshold the run used
	PopularitySource string // one of the Popularity constants
	Unranked         int    // families given the default rank

	LoadTime  time.Duration
	MatchTime time.Duration
}

// Skipped is the number of families left out because of load errors.
func (s Stats) Skipped() int {
	return s.MetadataErrors + s.FontErrors
}

// CacheInfo tracks which stages were served from cache.
type CacheInfo struct {
	LanguagesHit  bool
	FamiliesHit   bool
	PopularityHit bool
}
