// Package cli implements the statboard command-line interface.
//
// This package provides commands for resolving report layouts, validating
// reports for publish, rendering previews, and running the HTTP API. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - resolve: Compute block heights and typography for a report
//   - validate: Run the editor's publish checks against a report
//   - render: Generate SVG, PDF, PNG, JSON, or DOT previews
//   - inspect: Diagram a report's structure via Graphviz
//   - serve: Run the statboard HTTP API
//   - cache: Manage the local layout/chart cache
//
// # Example
//
//	import "github.com/statboard/statboard/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/statboard/statboard/pkg/buildinfo"
	"github.com/statboard/statboard/pkg/cache"
	"github.com/statboard/statboard/pkg/chartdata"
	"github.com/statboard/statboard/pkg/config"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "statboard"

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

	// ConfigPath is the --config flag value, empty for defaults.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "statboard",
		Short:        "Statboard resolves and renders event-statistics dashboards",
		Long:         `Statboard is the layout engine for event-statistics reports: it decides every block's height and typography from its content, renders previews, and serves the dashboard API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "path to a statboard.toml config file")

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// loadConfig reads the configuration the --config flag points at, or the
// defaults plus environment.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newEngine builds a resolution engine from config. Glyph metrics are
// preferred; the estimator stands in when the embedded face fails to load.
func (c *CLI) newEngine(cfg config.Config) (*resolve.Engine, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	var m measure.Measurer
	if fm, err := measure.NewFontMetrics(); err == nil {
		m = fm
	} else {
		c.Logger.Debug("font metrics unavailable, using estimator", "err", err)
		m = measure.NewEstimator()
	}
	return resolve.NewWithPolicy(m, policy), nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	engine, err := c.newEngine(cfg)
	if err != nil {
		return nil, err
	}
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	var src chartdata.Source
	if cfg.Charts.StaticFile != "" {
		if src, err = chartdata.LoadStatic(cfg.Charts.StaticFile); err != nil {
			return nil, err
		}
	} else if cfg.Charts.BaseURL != "" {
		src = chartdata.NewClient(cfg.Charts.BaseURL, cc, nil)
	}
	return pipeline.NewRunner(cc, nil, src, engine, c.Logger), nil
}

// newCache builds the CLI's local file cache.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/statboard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
