package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/glyphgap/glyphgap/pkg/config"
	"github.com/glyphgap/glyphgap/pkg/integrations"
	"github.com/glyphgap/glyphgap/pkg/integrations/gfonts"
	"github.com/glyphgap/glyphgap/pkg/pipeline"
	"github.com/glyphgap/glyphgap/pkg/report"
)

// retryDelay is the first backoff delay for popularity requests.
const retryDelay = time.Second

// analyzeFlags holds the analyze command's flag values. Only flags the user
// set replace the configured values.
type analyzeFlags struct {
	corpus         string
	languages      string
	maxMissing     int
	familyFilter   string
	limit          int
	popularityFile string
	offline        bool
	refresh        bool
	noCache        bool
	table          bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var f analyzeFlags
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank the glyph expansion opportunities of a font corpus",
		Long: `Analyze compares every font family in the corpus against every language in
the language catalog. A family that lacks only a few of a language's base
characters is an opportunity; opportunities are ranked by the speakers they
would reach per character added, weighted by family popularity and size.`,
		Example: `  # Families one character away from a new language
  glyphgap analyze --corpus ~/oss/fonts

  # Up to three missing characters, Noto families only, without network access
  glyphgap analyze --max-missing 3 --family-filter '^Noto' --offline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyAnalyzeFlags(cmd, &f)
			return c.runAnalyze(cmd.Context(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.corpus, "corpus", def.Corpus.Root, "font corpus root containing ofl, ufl and apache")
	flags.StringVar(&f.languages, "languages", "", "language catalog directory (default <corpus>/../gflanguages/Lib/gflanguages/data/languages)")
	flags.String("cache-dir", def.Cache.Dir, "cache directory for the file and sqlite backends")
	flags.IntVar(&f.maxMissing, "max-missing", def.Analyze.MaxMissing, "most characters a family may lack for a language")
	flags.StringVar(&f.familyFilter, "family-filter", "", "only analyze families whose name matches this regular expression")
	flags.IntVar(&f.limit, "limit", 0, "show at most this many opportunities (0 = all)")
	flags.StringVar(&f.popularityFile, "popularity-file", "", "read popularity from a saved metadata feed")
	flags.BoolVar(&f.offline, "offline", false, "do not fetch popularity; every family gets the default rank")
	flags.BoolVar(&f.refresh, "refresh", false, "ignore cached catalogs and feed")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	flags.BoolVar(&f.table, "table", false, "print opportunities as a table")

	return cmd
}

// applyAnalyzeFlags copies explicitly set flags over the loaded config.
func (c *CLI) applyAnalyzeFlags(cmd *cobra.Command, f *analyzeFlags) {
	cfg := c.config
	changed := cmd.Flags().Changed
	if changed("corpus") {
		cfg.Corpus.Root = config.ExpandHome(f.corpus)
	}
	if changed("languages") {
		cfg.Corpus.Languages = config.ExpandHome(f.languages)
	}
	if changed("max-missing") {
		cfg.Analyze.MaxMissing = f.maxMissing
	}
	if changed("family-filter") {
		cfg.Analyze.FamilyFilter = f.familyFilter
	}
	if changed("limit") {
		cfg.Analyze.Limit = f.limit
	}
	if changed("popularity-file") {
		cfg.Popularity.File = config.ExpandHome(f.popularityFile)
	}
}

// runAnalyze executes the pipeline and prints the report.
func (c *CLI) runAnalyze(ctx context.Context, f analyzeFlags) error {
	cfg := c.config
	if cfg.Analyze.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0, got %d", cfg.Analyze.Limit)
	}

	logger := c.Logger.With("run", uuid.NewString()[:8])
	backend := c.openCache(ctx, f.noCache)
	defer backend.Close()

	var pop pipeline.PopularitySource
	if !f.offline && cfg.Popularity.File == "" {
		pop = gfonts.NewClient(backend, cfg.Popularity.URL, cfg.PopularityTTL(),
			integrations.WithTimeout(cfg.PopularityTimeout()),
			integrations.WithRateLimit(cfg.Popularity.Rate),
			integrations.WithRetry(cfg.Popularity.Attempts, retryDelay),
		)
	}

	opts := pipeline.Options{
		CorpusRoot:     cfg.Corpus.Root,
		LanguagesDir:   cfg.Corpus.Languages,
		MaxMissing:     cfg.Analyze.MaxMissing,
		FamilyFilter:   cfg.Analyze.FamilyFilter,
		PopularityFile: cfg.Popularity.File,
		Offline:        f.offline,
		Refresh:        f.refresh,
		CatalogTTL:     cfg.CatalogTTL(),
		Logger:         logger,
	}

	prog := newProgress(logger)
	runner := pipeline.NewRunner(backend, pop, logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %s families against %s languages",
		humanize.Comma(int64(result.Stats.Processed)), humanize.Comma(int64(result.Stats.Languages))))

	ropts := report.Options{
		Verbose: c.verbose,
		Limit:   cfg.Analyze.Limit,
		Table:   f.table,
	}
	return report.Render(c.Out, result, ropts)
}
