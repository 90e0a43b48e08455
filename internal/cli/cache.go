package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glyphgap/glyphgap/pkg/cache"
	"github.com/glyphgap/glyphgap/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage memoized catalogs and the popularity feed",
	}

	cmd.PersistentFlags().String("cache-dir", config.Default().Cache.Dir, "cache directory for the file and sqlite backends")

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.CacheOptions()
			if opts.Backend == cache.BackendNone {
				printInfo(c.Out, "Caching is disabled")
				return nil
			}

			backend, err := cache.Open(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer backend.Close()

			clearer, ok := backend.(cache.Clearer)
			if !ok {
				return fmt.Errorf("the %s cache cannot be cleared", opts.Backend)
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(c.Out, "Cleared %d cached entries", count)
			printDetail(c.Out, "Location: %s", cacheLocation(opts))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached entries are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.Out, cacheLocation(c.config.CacheOptions()))
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config
			printKeyValue(c.Out, "backend", cfg.Cache.Backend)
			printKeyValue(c.Out, "location", cacheLocation(cfg.CacheOptions()))
			printKeyValue(c.Out, "catalog ttl", cfg.CatalogTTL().String())
			printKeyValue(c.Out, "feed ttl", cfg.PopularityTTL().String())
			return nil
		},
	}
}
