package cli

import (
	"github.com/spf13/cobra"

	"github.com/glyphgap/glyphgap/pkg/config"
)

// loadConfig reads the file given with --config, or the default config
// file if it exists. Unknown keys are reported but not fatal.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	path, required := c.configPath, c.configPath != ""
	if !required {
		path = config.DefaultPath()
	}

	cfg, unknown, err := config.Load(path, required)
	if err != nil {
		return err
	}
	for _, key := range unknown {
		c.Logger.Warn("Ignoring unknown config key", "key", key, "file", path)
	}

	if cmd.Flags().Changed("cache-dir") {
		// analyze and the cache commands share --cache-dir
		if dir, err := cmd.Flags().GetString("cache-dir"); err == nil {
			cfg.Cache.Dir = config.ExpandHome(dir)
		}
	}
	c.config = cfg
	return nil
}
