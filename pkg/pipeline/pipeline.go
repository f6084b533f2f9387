// Package pipeline provides the core report rendering pipeline for statboard.
//
// This package implements the complete hydrate → resolve → render pipeline
// that can be used by CLI, API, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Hydrate: Refresh every cell with the current upstream chart result
//  2. Resolve: Compute block heights and typography at the viewport width
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, source, engine, logger)
//	opts := pipeline.Options{
//	    WidthPx: 1200,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, rep, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Resolve only
//	layout, err := runner.Resolve(ctx, rep, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, rep, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/statboard/statboard/pkg/layout/grid"
	"github.com/statboard/statboard/pkg/report"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWidthPx is the viewport width used when the caller does not
	// supply one. It matches the editor's preview width.
	DefaultWidthPx = 1200.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// WidthPx is the viewport width to resolve against.
	WidthPx float64 `json:"width_px,omitempty"`

	// Published switches structural failures to degraded placeholders
	// instead of passing them through.
	Published bool `json:"published,omitempty"`

	// SkipHydrate renders the report's stored cell payloads without
	// contacting the chart source.
	SkipHydrate bool `json:"skip_hydrate,omitempty"`

	// Refresh bypasses the layout cache.
	Refresh bool `json:"refresh,omitempty"`

	// Formats selects the artifacts to render.
	Formats []string `json:"formats,omitempty"`

	// CellOutlines draws cell boundaries in SVG output.
	CellOutlines bool `json:"cell_outlines,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.WidthPx == 0 {
		o.WidthPx = DefaultWidthPx
	}
	if o.WidthPx < 0 {
		return fmt.Errorf("width_px must be positive, got %.2f", o.WidthPx)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Report is the hydrated report the layout was resolved for.
	Report report.Report

	// Layout is the resolved geometry at the requested width.
	Layout grid.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount  int
	ChartCount  int
	HydrateTime time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ResolveHit bool // Whether the resolved layout came from cache
}

// chartCount is the number of cells across all blocks, i.e. the number of
// chart results one hydration pass fetches.
func chartCount(rep report.Report) int {
	n := 0
	for i := range rep.Blocks {
		n += len(rep.Blocks[i].Cells)
	}
	return n
}
