// Package pkg provides the core libraries for the statboard layout engine.
//
// # Overview
//
// Statboard resolves the height and typography of every block in an
// event-statistics report from its content, then renders the result. The
// pkg directory is organized into five main areas:
//
//  1. [layout] - The resolution engine (measurement, fit, typography, heights, grid)
//  2. [report] - The report document model (blocks, cells, chart payloads, ratios)
//  3. [editor] - Publish validation built on the same engine the renderer uses
//  4. [render] - Output formats (SVG previews, PDF/PNG conversion, DOT diagrams)
//  5. [pipeline] - Orchestration (hydrate → resolve → render) shared by CLI and API
//
// # Architecture
//
// The typical data flow through statboard:
//
//	Report JSON + Chart Results
//	         ↓
//	    [chartdata] package (hydrate cells from the stats service)
//	         ↓
//	    [layout/resolve] package (fit checks + typography + height priority chain)
//	         ↓
//	    [layout/grid] package (per-block styles, column widths, vertical stacking)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT output
//
// # Quick Start
//
// Resolve a report and render a preview:
//
//	import (
//	    "context"
//	    "github.com/statboard/statboard/pkg/layout/measure"
//	    "github.com/statboard/statboard/pkg/layout/resolve"
//	    "github.com/statboard/statboard/pkg/pipeline"
//	    "github.com/statboard/statboard/pkg/report"
//	)
//
//	// 1. Load the report
//	rep, _ := report.ReadFile("report.json")
//
//	// 2. Build an engine over a text measurer
//	engine := resolve.New(measure.NewEstimator())
//
//	// 3. Run the pipeline
//	runner := pipeline.NewRunner(nil, nil, nil, engine, nil)
//	result, _ := runner.Execute(context.Background(), rep, pipeline.Options{
//	    WidthPx: 1200,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// ## Layout Engine
//
// [layout/measure] - Text measurement behind the Measurer interface: a fast
// character-count estimator and exact glyph metrics from an embedded face.
//
// [layout/fit] - Per-cell fit validation at a candidate font size. Text and
// tables wrap and report required height; pies and bars have structural
// limits that no font size fixes.
//
// [layout/typography] - Binary search for the largest base font size at
// which every cell fits, plus independent KPI value sizing.
//
// [layout/resolve] - The height priority chain: intrinsic media, author
// aspect override, readability, structural failure. Produces a Resolution
// with height, typography, and publish verdict per block.
//
// [layout/grid] - Drives the engine across a whole report at a viewport
// width: column widths from cell spans, block styles, vertical stacking.
//
// ## Document Model
//
// [report] - Reports, blocks, cells, chart payloads (text, table, series,
// KPI, image), and exact aspect ratios. JSON round-trips losslessly.
//
// [chartdata] - Chart result sources: an HTTP client against the stats
// service with caching and retries, and a static file source for tests
// and offline use.
//
// ## Validation & Rendering
//
// [editor] - The publish gate: structural failures and invalid
// configurations are errors, excessive heights are warnings, engine
// remediations become suggestions.
//
// [render] - SVG previews of resolved layouts plus PDF/PNG conversion.
//
// [render/structure] - DOT diagrams of report structure via Graphviz.
//
// ## Infrastructure
//
// [pipeline] - Complete resolution pipeline (hydrate → resolve → render)
// used by CLI and API. Ensures consistent behavior across entry points.
//
// [store] - Report persistence: in-memory for tests and single-process
// use, MongoDB for the hosted service.
//
// [cache] - Layout and chart-result caching: memory, file, redis, and a
// scoped wrapper for key namespacing.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors with user-facing messages shared by the engine,
// the editor, and the HTTP API.
//
// [observability] - Hook registry for pipeline, cache, and HTTP metrics.
//
// [server] - The HTTP API: report CRUD, layout resolution, publish
// validation, and rendered views.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/layout/...         # Engine only
//
// [layout]: https://pkg.go.dev/github.com/statboard/statboard/pkg/layout
// [layout/measure]: https://pkg.go.dev/github.com/statboard/statboard/pkg/layout/measure
// [layout/fit]: https://pkg.go.dev/github.com/statboard/statboard/pkg/layout/fit
// [layout/typography]: https://pkg.go.dev/github.com/statboard/statboard/pkg/layout/typography
// [layout/resolve]: https://pkg.go.dev/github.com/statboard/statboard/pkg/layout/resolve
// [layout/grid]: https://pkg.go.dev/github.com/statboard/statboard/pkg/layout/grid
// [report]: https://pkg.go.dev/github.com/statboard/statboard/pkg/report
// [chartdata]: https://pkg.go.dev/github.com/statboard/statboard/pkg/chartdata
// [editor]: https://pkg.go.dev/github.com/statboard/statboard/pkg/editor
// [render]: https://pkg.go.dev/github.com/statboard/statboard/pkg/render
// [render/structure]: https://pkg.go.dev/github.com/statboard/statboard/pkg/render/structure
// [pipeline]: https://pkg.go.dev/github.com/statboard/statboard/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/statboard/statboard/pkg/store
// [cache]: https://pkg.go.dev/github.com/statboard/statboard/pkg/cache
// [config]: https://pkg.go.dev/github.com/statboard/statboard/pkg/config
// [errors]: https://pkg.go.dev/github.com/statboard/statboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/statboard/statboard/pkg/observability
// [server]: https://pkg.go.dev/github.com/statboard/statboard/pkg/server
package pkg
