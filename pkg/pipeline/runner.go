package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glyphgap/glyphgap/pkg/cache"
	"github.com/glyphgap/glyphgap/pkg/catalog"
	"github.com/glyphgap/glyphgap/pkg/errors"
	"github.com/glyphgap/glyphgap/pkg/integrations/gfonts"
	"github.com/glyphgap/glyphgap/pkg/observability"
	"github.com/glyphgap/glyphgap/pkg/opportunity"
	"github.com/glyphgap/glyphgap/pkg/popularity"
)

// Stage names passed to observability hooks.
const (
	StageLanguages  = "languages"
	StageFamilies   = "families"
	StagePopularity = "popularity"
	StageChars      = "chars"
	StageMatch      = "match"
)

// PopularitySource fetches the popularity feed.
type PopularitySource interface {
	FetchPopularity(ctx context.Context, refresh bool) (entries []gfonts.Entry, cached bool, err error)
}

// Runner executes the pipeline with memoized catalogs.
//
// The Runner holds no per-run state; the same Runner may execute several
// runs with different options.
type Runner struct {
	Cache      cache.Cache
	Popularity PopularitySource
	Logger     *log.Logger
}

// NewRunner creates a runner. A nil cache disables memoization; a nil
// popularity source behaves like an offline run.
func NewRunner(c cache.Cache, pop PopularitySource, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Popularity: pop, Logger: logger}
}

// Execute runs every stage and returns the ranked opportunities.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)
	memo := cache.NewMemo(r.Cache, opts.Refresh)
	result := &Result{Stats: Stats{MaxMissing: opts.MaxMissing}}
	loadStart := time.Now()

	// Stage 1: languages
	langs, hit, err := r.languages(ctx, memo, opts, logger)
	if err != nil {
		return nil, err
	}
	result.Languages = langs
	result.Stats.Languages = len(langs)
	result.CacheInfo.LanguagesHit = hit
	logger.Info("loaded languages", "count", len(langs), "cached", hit)

	// Stage 2: families
	loader := &catalog.FamilyLoader{Root: opts.CorpusRoot, Memo: memo, Logger: logger}
	scan, hit, err := r.scan(ctx, memo, loader, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.MetadataErrors = len(scan.Errors)
	result.CacheInfo.FamiliesHit = hit
	logger.Info("scanned corpus", "families", len(scan.Families), "unusable", len(scan.Errors), "cached", hit)

	// Stage 3: popularity
	stats, source, hit := r.popularity(ctx, opts, logger)
	result.Stats.PopularitySource = source
	result.CacheInfo.PopularityHit = hit
	result.Stats.Unranked = popularity.Fill(stats, scan.Names())

	// Stage 2b: characters of every family that will be compared
	families, err := r.chars(ctx, loader, scan, opts, &result.Stats, logger)
	if err != nil {
		return nil, err
	}
	result.Stats.Families = len(families)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 4: match, score and rank
	matchStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, StageMatch)
	res := opportunity.Match(langs, families, opportunity.MatchOptions{
		MaxMissing: opts.MaxMissing,
		Filter:     opts.filter,
	})
	opps := opportunity.ScoreAll(res, families, stats, langs)
	opportunity.Rank(opps)
	result.Stats.MatchTime = time.Since(matchStart)
	hooks.OnStageComplete(ctx, StageMatch, len(opps), result.Stats.MatchTime, nil)

	result.Opportunities = opps
	result.Stats.Processed = res.Processed
	result.Stats.FilterSkipped = res.Skipped
	logger.Info("found opportunities",
		"count", len(opps),
		"families", res.Processed,
		"duration", result.Stats.MatchTime)
	return result, nil
}

func ttlOr(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func (r *Runner) languages(ctx context.Context, memo *cache.Memo, opts Options, logger *log.Logger) (map[string]opportunity.Language, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, StageLanguages)
	start := time.Now()

	loader := &catalog.LanguageLoader{Dir: opts.LanguagesDir, Logger: logger}
	var langs map[string]opportunity.Language
	hit, err := memo.GetOrCompute(ctx, cache.Key(StageLanguages, opts.LanguagesDir), ttlOr(opts.CatalogTTL, cache.TTLLanguages), &langs,
		func() (any, error) { return loader.Load(ctx) })

	hooks.OnStageComplete(ctx, StageLanguages, len(langs), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return langs, hit, nil
}

func (r *Runner) scan(ctx context.Context, memo *cache.Memo, loader *catalog.FamilyLoader, opts Options) (*catalog.Scan, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, StageFamilies)
	start := time.Now()

	// the corpus must exist even when its scan is cached
	if err := errors.ValidateDir(errors.ErrCodeInvalidCorpus, opts.CorpusRoot); err != nil {
		hooks.OnStageComplete(ctx, StageFamilies, 0, time.Since(start), err)
		return nil, false, err
	}

	var scan catalog.Scan
	hit, err := memo.GetOrCompute(ctx, cache.Key(StageFamilies, opts.CorpusRoot), ttlOr(opts.CatalogTTL, cache.TTLFamilies), &scan,
		func() (any, error) { return loader.Scan(ctx) })

	hooks.OnStageComplete(ctx, StageFamilies, len(scan.Families), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for _, e := range scan.Errors {
		hooks.OnItemSkipped(ctx, StageFamilies, e.Path, errors.New(errors.ErrCodeInvalidMetadata, "%s", e.Message))
	}
	return &scan, hit, nil
}

// popularity never fails: without a usable feed every family is unranked.
func (r *Runner) popularity(ctx context.Context, opts Options, logger *log.Logger) (map[string]opportunity.FamilyStats, string, bool) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, StagePopularity)
	start := time.Now()

	var (
		entries []gfonts.Entry
		source  string
		hit     bool
		err     error
	)
	switch {
	case opts.PopularityFile != "":
		entries, err = gfonts.ReadFile(opts.PopularityFile)
		source = PopularityFile
	case opts.Offline || r.Popularity == nil:
		source = PopularityOffline
	default:
		entries, hit, err = r.Popularity.FetchPopularity(ctx, opts.Refresh)
		source = PopularityLive
		if hit {
			source = PopularityCached
		}
	}

	hooks.OnStageComplete(ctx, StagePopularity, len(entries), time.Since(start), err)
	if err != nil {
		logger.Warn("popularity unavailable, all families unranked", "err", err)
		return make(map[string]opportunity.FamilyStats), PopularityDefaults, false
	}
	logger.Debug("ranked families", "source", source, "count", len(entries))
	return popularity.Rank(entries), source, hit
}

// chars reads the exemplar characters of every family that passes the
// filter. Families excluded by the filter are kept without characters so
// that matching counts them as skipped.
func (r *Runner) chars(ctx context.Context, loader *catalog.FamilyLoader, scan *catalog.Scan, opts Options, stats *Stats, logger *log.Logger) (map[string]opportunity.Family, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, StageChars)
	start := time.Now()

	families := make(map[string]opportunity.Family, len(scan.Families))
	for _, meta := range scan.Families {
		if err := ctx.Err(); err != nil {
			hooks.OnStageComplete(ctx, StageChars, len(families), time.Since(start), err)
			return nil, err
		}

		f := opportunity.Family{Name: meta.Name, NumFonts: meta.NumFonts, NumAxes: meta.NumAxes}
		if opts.filter == nil || opts.filter.MatchString(meta.Name) {
			chars, err := loader.Chars(ctx, meta)
			if err != nil {
				if errors.IsFatal(err) {
					hooks.OnStageComplete(ctx, StageChars, len(families), time.Since(start), err)
					return nil, err
				}
				logger.Warn("skipping family", "family", meta.Name, "err", errors.UserMessage(err))
				hooks.OnItemSkipped(ctx, StageChars, meta.Name, err)
				stats.FontErrors++
				continue
			}
			f.Chars = chars
		}
		families[meta.Name] = f
	}

	hooks.OnStageComplete(ctx, StageChars, len(families), time.Since(start), nil)
	return families, nil
}
