// Package pkg provides the libraries behind glyphgap.
//
// # Overview
//
// Glyphgap looks for font families that are only a few characters short of
// supporting a language. Adding those characters is cheap; the value is the
// number of speakers reached, weighted by how popular and how large the
// family is. The pkg directory is organized into four areas:
//
//  1. Domain logic: [charset], [opportunity]
//  2. Catalog loading: [textproto], [catalog], [fontchars], [popularity]
//  3. Infrastructure: [cache], [httputil], [integrations], [config],
//     [errors], [observability], [buildinfo]
//  4. Orchestration and output: [pipeline], [report]
//
// # Architecture
//
// The typical data flow:
//
//	gflanguages *.textproto     fonts corpus METADATA.pb + font files
//	         ↓                              ↓
//	  [catalog] languages         [catalog] families → [fontchars] cmap
//	         ↓                              ↓
//	         └──────→ [opportunity] match ←─┘ ← [popularity] ranks
//	                        ↓
//	              score, rank → [report]
//
// # Quick Start
//
//	c, _ := cache.Open(ctx, cache.Options{Dir: config.DefaultCacheDir()})
//	runner := pipeline.NewRunner(c, gfonts.NewClient(c, "", cache.TTLPopularity), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    CorpusRoot: "/src/fonts",
//	    MaxMissing: 1,
//	})
//	if err != nil {
//	    return err
//	}
//	report.Render(os.Stdout, result, report.Options{Limit: 20})
//
// # Main Packages
//
// [charset] - Immutable sets of Unicode code points, and parsing of
// exemplar character strings.
//
// [opportunity] - Grouping families by the characters they lack for each
// language, scoring those groups and ranking them. Pure and deterministic.
//
// [textproto] - A reader for the protobuf text format used by the corpus
// and language catalog files.
//
// [catalog] - Language and family catalogs read from disk, including the
// choice of exemplar font per family.
//
// [fontchars] - Character coverage of a font file from its cmap.
//
// [popularity] - Dense popularity ranks from the Google Fonts metadata feed.
//
// [cache] - Memoization of slow catalog work with file, SQLite, Redis and
// no-op backends.
//
// [integrations] - Rate limited, retrying, cached HTTP client; [gfonts]
// fetches the popularity feed with it.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include network and Redis tests
//
// [gfonts]: https://pkg.go.dev/github.com/glyphgap/glyphgap/pkg/integrations/gfonts
package pkg
