package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/statboard/statboard/pkg/cache"
	"github.com/statboard/statboard/pkg/chartdata"
	"github.com/statboard/statboard/pkg/layout/grid"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/observability"
	"github.com/statboard/statboard/pkg/render"
	"github.com/statboard/statboard/pkg/render/structure"
	"github.com/statboard/statboard/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Source chartdata.Source
	Engine *resolve.Engine
	Logger *log.Logger
}

// NewRunner creates a runner over the given collaborators.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If src is nil, hydration is skipped and stored cell payloads render as-is.
// If engine is nil, an estimator-backed engine with the default policy is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, src chartdata.Source, engine *resolve.Engine, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if engine == nil {
		engine = resolve.New(measure.NewEstimator())
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Source: src,
		Engine: engine,
		Logger: logger,
	}
}

// Execute runs the complete hydrate → resolve → render pipeline.
func (r *Runner) Execute(ctx context.Context, rep report.Report, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Hydrate
	hydrateStart := time.Now()
	rep, err := r.Hydrate(ctx, rep, opts)
	if err != nil {
		return nil, fmt.Errorf("hydrate: %w", err)
	}
	result.Report = rep
	result.Stats.HydrateTime = time.Since(hydrateStart)
	result.Stats.BlockCount = len(rep.Blocks)
	result.Stats.ChartCount = chartCount(rep)

	opts.Logger.Info("hydrated report",
		"report", rep.ID,
		"charts", result.Stats.ChartCount,
		"duration", result.Stats.HydrateTime)

	// Stage 2: Resolve
	resolveStart := time.Now()
	layout, resolveHit, err := r.ResolveWithCacheInfo(ctx, rep, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Layout = layout
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ResolveHit = resolveHit

	opts.Logger.Info("resolved layout",
		"blocks", len(layout.Blocks),
		"height", layout.TotalHeightPx,
		"cached", resolveHit,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, rep, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Hydrate refreshes every cell with the current upstream chart result.
// Without a source, or with SkipHydrate set, the stored payloads stand.
func (r *Runner) Hydrate(ctx context.Context, rep report.Report, opts Options) (report.Report, error) {
	if r.Source == nil || opts.SkipHydrate {
		return rep, nil
	}

	start := time.Now()
	observability.Pipeline().OnHydrateStart(ctx, rep.ID, chartCount(rep))
	err := chartdata.Hydrate(ctx, r.Source, &rep)
	observability.Pipeline().OnHydrateComplete(ctx, rep.ID, time.Since(start), err)
	if err != nil {
		return report.Report{}, err
	}
	return rep, nil
}

// ResolveWithCacheInfo resolves the layout with caching and reports
// whether the result came from cache.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, rep report.Report, opts Options) (grid.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return grid.Layout{}, false, err
	}

	cacheKey, keyed := r.layoutCacheKey(rep, opts)

	if keyed && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached grid.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Corrupt entry: fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnResolveStart(ctx, rep.ID, len(rep.Blocks))

	driver := grid.NewDriver(r.Engine)
	driver.Published = opts.Published
	layout, err := driver.Layout(rep, opts.WidthPx)

	observability.Pipeline().OnResolveComplete(ctx, rep.ID, time.Since(start), err)
	if err != nil {
		return grid.Layout{}, false, err
	}

	if keyed {
		if data, err := json.Marshal(layout); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return layout, false, nil
}

// Resolve is a convenience wrapper that discards the cache hit info.
func (r *Runner) Resolve(ctx context.Context, rep report.Report, opts Options) (grid.Layout, error) {
	layout, _, err := r.ResolveWithCacheInfo(ctx, rep, opts)
	return layout, err
}

// Render generates the requested artifacts from a resolved layout.
func (r *Runner) Render(ctx context.Context, rep report.Report, layout grid.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	renderSVG := func() []byte {
		if svg == nil {
			var svgOpts []render.SVGOption
			if opts.CellOutlines {
				svgOpts = append(svgOpts, render.WithCellOutlines())
			}
			svg = render.RenderSVG(rep, layout, svgOpts...)
		}
		return svg
	}

	var err error
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			artifacts[format], err = render.RenderJSON(layout)
		case FormatSVG:
			artifacts[format] = renderSVG()
		case FormatPDF:
			artifacts[format], err = render.ToPDF(renderSVG())
		case FormatPNG:
			artifacts[format], err = render.ToPNG(renderSVG(), 2.0)
		case FormatDOT:
			artifacts[format] = []byte(structure.ToDOT(rep, layout, structure.Options{Detailed: true}))
		}
		if err != nil {
			break
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// layoutCacheKey keys a resolution by report content, width, and policy.
// The second return is false when the report cannot be serialized, which
// disables caching for the run rather than failing it.
func (r *Runner) layoutCacheKey(rep report.Report, opts Options) (string, bool) {
	repData, err := json.Marshal(rep)
	if err != nil {
		return "", false
	}
	policyData, err := json.Marshal(struct {
		Policy    resolve.Policy
		Published bool
	}{r.Engine.Policy(), opts.Published})
	if err != nil {
		return "", false
	}
	return r.Keyer.LayoutKey(cache.Hash(repData), opts.WidthPx, cache.Hash(policyData)), true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
