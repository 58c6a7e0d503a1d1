// Package cli implements the citemap command-line interface.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/internal/config"
	"github.com/matzehuels/citemap/pkg/buildinfo"
	"github.com/matzehuels/citemap/pkg/cache"
	"github.com/matzehuels/citemap/pkg/observability"
	"github.com/matzehuels/citemap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "citemap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Config is the loaded configuration file merged over the defaults.
	// It is populated before any command runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
// It also registers pipeline hooks that log each stage at debug level.
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)
	observability.SetPipelineHooks(stageLogger{logger})
	return &CLI{
		Logger: logger,
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "citemap maps the connected components of citation networks",
		Long: `citemap labels the connected components of a citation network, measures how
much of the network its largest components cover, and draws each component as
a cluster of papers inside its own circle.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/citemap/config.toml)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.subjectsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file. The file's log level applies unless
// --verbose was given.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if f := cmd.Flag("verbose"); f != nil && f.Changed {
		return nil
	}
	if cfg.Log.Level != "" {
		level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level))
		if err != nil {
			c.Logger.Warn("ignoring unknown log level", "level", cfg.Log.Level)
			return nil
		}
		c.SetLogLevel(level)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
