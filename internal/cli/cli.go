// Package cli implements the glyphgap command-line interface.
//
// The commands are:
//   - analyze: rank the glyph expansion opportunities of a font corpus
//   - cache: inspect and clear memoized catalogs and feeds
//   - completion: generate shell completion scripts
//
// Reports go to stdout; logs and diagnostics go to stderr.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glyphgap/glyphgap/pkg/buildinfo"
	"github.com/glyphgap/glyphgap/pkg/cache"
	"github.com/glyphgap/glyphgap/pkg/config"
	"github.com/glyphgap/glyphgap/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitInterrupt = 130 // shell convention for SIGINT
)

// ExitCode maps an error returned by the root command to a process exit
// code. A cancelled run exits with [ExitInterrupt].
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupt
	default:
		return ExitError
	}
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives reports and command output.
	Out io.Writer

	configPath string
	verbose    bool
	config     *config.Config
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Glyphgap finds the characters a font family is missing for new languages",
		Long:         `Glyphgap compares every family in a font corpus against a language catalog and ranks the families that could support a new language by adding only a few characters.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			h := logHooks{c.Logger}
			observability.Register(observability.Hooks{Pipeline: h, Cache: h, HTTP: h})
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging and per-language report details")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// openCache opens the configured backend. A backend that cannot be opened
// is logged and replaced by a NullCache, since every cached value can be
// recomputed.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	opts := c.config.CacheOptions()
	backend, err := cache.Open(ctx, opts)
	if err != nil {
		c.Logger.Warn("Cache unavailable, continuing without it", "backend", opts.Backend, "error", err)
		return cache.NewNullCache()
	}
	c.Logger.Debug("Opened cache", "backend", opts.Backend, "location", cacheLocation(opts))
	return backend
}

// cacheLocation describes where a backend keeps its entries.
func cacheLocation(opts cache.Options) string {
	switch opts.Backend {
	case cache.BackendSQLite:
		return cache.SQLitePath(opts.Dir)
	case cache.BackendRedis:
		return opts.RedisURL
	case cache.BackendNone:
		return ""
	default:
		return opts.Dir
	}
}
