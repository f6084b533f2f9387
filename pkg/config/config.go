// Package config loads statboard configuration from TOML files with
// environment overrides for deployment secrets.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/fit"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/layout/typography"
	"github.com/statboard/statboard/pkg/report"
)

// =============================================================================
// Configuration Structure
// =============================================================================

// Config is the full statboard configuration tree.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Charts ChartsConfig `toml:"charts"`
	Layout LayoutConfig `toml:"layout"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// StoreConfig selects and configures the report store backend.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "memory", "file", "redis", or "none".
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ChartsConfig points at the chart result source.
type ChartsConfig struct {
	// BaseURL is the statistics service root; empty disables the HTTP
	// client and requires StaticFile.
	BaseURL string `toml:"base_url"`

	// StaticFile is a JSON file of chart results for offline runs.
	StaticFile string `toml:"static_file"`
}

// LayoutConfig exposes the resolution policy knobs.
type LayoutConfig struct {
	FloorFontPx     float64 `toml:"floor_font_px"`
	CeilingFontPx   float64 `toml:"ceiling_font_px"`
	FontStepPx      float64 `toml:"font_step_px"`
	BaselineAspect  string  `toml:"baseline_aspect"`
	MaxSaneHeightPx float64 `toml:"max_sane_height_px"`
	PieLegendMax    int     `toml:"pie_legend_max"`
	BlockSpacingPx  float64 `toml:"block_spacing_px"`
	PreviewWidthPx  float64 `toml:"preview_width_px"`
}

// =============================================================================
// Loading
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	limits := typography.DefaultLimits()
	params := fit.DefaultParams()
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Backend: "memory", MongoDatabase: "statboard"},
		Cache:  CacheConfig{Backend: "memory"},
		Layout: LayoutConfig{
			FloorFontPx:     limits.FloorPx,
			CeilingFontPx:   limits.CeilingPx,
			FontStepPx:      limits.StepPx,
			BaselineAspect:  "4:1",
			MaxSaneHeightPx: resolve.DefaultMaxSaneHeightPx,
			PieLegendMax:    params.PieLegendMax,
			BlockSpacingPx:  16,
			PreviewWidthPx:  1200,
		},
	}
}

// Load reads configuration from an optional TOML file, then applies
// environment overrides. An empty path loads defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays deployment settings from the environment. Only
// connection details are overridable this way; layout knobs live in the
// file.
func (c *Config) applyEnv() {
	if v := os.Getenv("STATBOARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STATBOARD_MONGO_URI"); v != "" {
		c.Store.MongoURI = v
		c.Store.Backend = "mongo"
	}
	if v := os.Getenv("STATBOARD_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = "redis"
	}
	if v := os.Getenv("STATBOARD_REDIS_PASSWORD"); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := os.Getenv("STATBOARD_CHARTS_URL"); v != "" {
		c.Charts.BaseURL = v
	}
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory":
	case "mongo":
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store backend mongo requires mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case "memory", "none":
	case "file":
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend file requires dir")
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if _, err := report.ParseRatio(c.Layout.BaselineAspect); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "baseline_aspect")
	}
	if c.Layout.FloorFontPx <= 0 || c.Layout.CeilingFontPx < c.Layout.FloorFontPx {
		return errors.New(errors.ErrCodeInvalidConfig,
			"font limits must satisfy 0 < floor <= ceiling, got floor %.2f ceiling %.2f",
			c.Layout.FloorFontPx, c.Layout.CeilingFontPx)
	}
	return nil
}

// =============================================================================
// Policy Construction
// =============================================================================

// Policy builds the resolution policy the layout config describes.
func (c *Config) Policy() (resolve.Policy, error) {
	baseline, err := report.ParseRatio(c.Layout.BaselineAspect)
	if err != nil {
		return resolve.Policy{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "baseline_aspect")
	}

	p := resolve.DefaultPolicy()
	p.Limits.FloorPx = c.Layout.FloorFontPx
	p.Limits.CeilingPx = c.Layout.CeilingFontPx
	if c.Layout.FontStepPx > 0 {
		p.Limits.StepPx = c.Layout.FontStepPx
	}
	if c.Layout.PieLegendMax > 0 {
		p.Fit.PieLegendMax = c.Layout.PieLegendMax
	}
	p.BaselineAspect = baseline
	if c.Layout.MaxSaneHeightPx > 0 {
		p.MaxSaneHeightPx = c.Layout.MaxSaneHeightPx
	}
	return p, nil
}
