package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/statboard/statboard/pkg/cache"
	"github.com/statboard/statboard/pkg/chartdata"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/report"
)

var square = measure.Estimator{CharWidthEm: 0.5, LineHeightEm: 1.0}

func newTestRunner(src chartdata.Source) *Runner {
	policy := resolve.DefaultPolicy()
	policy.Fit.CellPaddingPx = 0
	engine := resolve.NewWithPolicy(square, policy)
	return NewRunner(cache.NewMemoryCache(), nil, src, engine, nil)
}

func testReport() report.Report {
	return report.Report{
		ID:    "r1",
		Title: "Weekly events",
		Blocks: []report.Block{
			{ID: "b1", Cells: []report.Cell{
				{ChartID: "note", Width: 1, BodyType: report.BodyText, Text: "stale"},
			}},
		},
	}
}

func TestExecute(t *testing.T) {
	src := chartdata.StaticSource{
		"note": {ChartID: "note", Type: report.BodyText, Text: "Signups rose all week"},
	}
	r := newTestRunner(src)
	defer r.Close()

	result, err := r.Execute(context.Background(), testReport(), Options{
		WidthPx: 800,
		Formats: []string{FormatJSON, FormatSVG, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Report.Blocks[0].Cells[0].Text != "Signups rose all week" {
		t.Error("hydration should replace stored payloads")
	}
	if result.Stats.BlockCount != 1 || result.Stats.ChartCount != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(result.Layout.Blocks) != 1 || result.Layout.Blocks[0].Style.HeightPx != 200 {
		t.Errorf("layout = %+v", result.Layout)
	}

	for _, format := range []string{FormatJSON, FormatSVG, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "Signups rose all week") {
		t.Error("svg should render the hydrated content")
	}
}

func TestExecuteFailsOnMissingChart(t *testing.T) {
	r := newTestRunner(chartdata.StaticSource{})
	defer r.Close()

	_, err := r.Execute(context.Background(), testReport(), Options{})
	if err == nil || !strings.Contains(err.Error(), "hydrate") {
		t.Errorf("err = %v, want hydrate failure", err)
	}
}

func TestResolveUsesCache(t *testing.T) {
	r := newTestRunner(nil)
	defer r.Close()
	ctx := context.Background()
	rep := testReport()
	opts := Options{WidthPx: 800}

	first, hit, err := r.ResolveWithCacheInfo(ctx, rep, opts)
	if err != nil {
		t.Fatalf("ResolveWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first resolution should miss the cache")
	}

	second, hit, err := r.ResolveWithCacheInfo(ctx, rep, opts)
	if err != nil {
		t.Fatalf("ResolveWithCacheInfo (cached): %v", err)
	}
	if !hit {
		t.Error("second resolution should hit the cache")
	}
	if second.TotalHeightPx != first.TotalHeightPx {
		t.Errorf("cached layout height = %v, want %v", second.TotalHeightPx, first.TotalHeightPx)
	}

	// A different width is a different key.
	_, hit, err = r.ResolveWithCacheInfo(ctx, rep, Options{WidthPx: 400})
	if err != nil {
		t.Fatalf("ResolveWithCacheInfo (new width): %v", err)
	}
	if hit {
		t.Error("a new width should miss the cache")
	}
}

func TestOptionsValidate(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.WidthPx != DefaultWidthPx {
		t.Errorf("width = %v", opts.WidthPx)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("formats = %v", opts.Formats)
	}

	bad := Options{Formats: []string{"webp"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("unknown format should fail validation")
	}
}
