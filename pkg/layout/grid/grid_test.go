package grid

import (
	"testing"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/report"
)

var square = measure.Estimator{CharWidthEm: 0.5, LineHeightEm: 1.0}

func newDriver() *Driver {
	p := resolve.DefaultPolicy()
	p.Fit.CellPaddingPx = 0
	return NewDriver(resolve.NewWithPolicy(square, p))
}

func sampleReport() report.Report {
	return report.Report{
		ID: "r1",
		Blocks: []report.Block{
			{ID: "b1", Cells: []report.Cell{
				{ChartID: "txt", Width: 2, BodyType: report.BodyText, Text: "Short note"},
				{ChartID: "kpi", Width: 1, BodyType: report.BodyKPI, KPI: &report.KPIData{Value: "42", Label: "total"}},
			}},
			{ID: "b2", Cells: []report.Cell{
				{ChartID: "img", Width: 1, BodyType: report.BodyImage,
					Image: &report.ImageData{AspectRatio: report.MustRatio("16:9"), Mode: report.ImageModeIntrinsic}},
			}},
		},
	}
}

func TestLayout(t *testing.T) {
	d := newDriver()

	got, err := d.Layout(sampleReport(), 900)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(got.Blocks))
	}

	// 2:1 weights over 900px.
	b1 := got.Blocks[0]
	if len(b1.CellWidthsPx) != 2 || b1.CellWidthsPx[0] != 600 || b1.CellWidthsPx[1] != 300 {
		t.Errorf("CellWidthsPx = %v, want [600 300]", b1.CellWidthsPx)
	}
	if b1.Resolution.Priority != resolve.PriorityReadability {
		t.Errorf("b1 priority = %v, want readability", b1.Resolution.Priority)
	}
	if b1.Style.HeightPx != b1.Resolution.HeightPx {
		t.Errorf("style height %v != resolution height %v", b1.Style.HeightPx, b1.Resolution.HeightPx)
	}
	if _, ok := b1.Style.KPIValueFontSizePx["kpi"]; !ok {
		t.Error("KPI value size missing from style")
	}

	// The intrinsic image dictates the second block: 900 * 9/16.
	b2 := got.Blocks[1]
	if b2.Resolution.Priority != resolve.PriorityIntrinsic {
		t.Errorf("b2 priority = %v, want intrinsic", b2.Resolution.Priority)
	}
	if b2.Style.HeightPx != 506.25 {
		t.Errorf("b2 height = %v, want 506.25", b2.Style.HeightPx)
	}

	wantTotal := b1.Style.HeightPx + b2.Style.HeightPx + DefaultBlockSpacingPx
	if got.TotalHeightPx != wantTotal {
		t.Errorf("TotalHeightPx = %v, want %v", got.TotalHeightPx, wantTotal)
	}
}

func TestLayoutDegradedPlaceholder(t *testing.T) {
	d := newDriver()
	d.Published = true

	data := &report.TableData{Header: []string{"name", "count"}}
	for i := 0; i < 500; i++ {
		data.Rows = append(data.Rows, []string{"event", "1"})
	}
	rep := report.Report{
		ID: "r2",
		Blocks: []report.Block{
			{ID: "huge", MaxAllowedHeightPx: 600, Cells: []report.Cell{
				{ChartID: "tbl", Width: 2, BodyType: report.BodyTable, Table: data},
			}},
		},
	}

	got, err := d.Layout(rep, 800)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	style := got.Blocks[0].Style
	if !style.Degraded {
		t.Fatal("published structural failure should degrade, not crash or shrink")
	}
	if style.HeightPx != 200 {
		t.Errorf("placeholder height = %v, want baseline 200", style.HeightPx)
	}
	if !got.Blocks[0].Resolution.PublishBlocked {
		t.Error("resolution should still carry the failure")
	}

	// Drafts surface the failure untouched.
	d.Published = false
	got, err = d.Layout(rep, 800)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if got.Blocks[0].Style.Degraded {
		t.Error("draft layout should not degrade")
	}
	if got.Blocks[0].Style.HeightPx != 0 {
		t.Errorf("draft failure height = %v, want 0", got.Blocks[0].Style.HeightPx)
	}
}

func TestLayoutRejectsBadInput(t *testing.T) {
	d := newDriver()

	_, err := d.Layout(sampleReport(), 0)
	if errors.GetCode(err) != errors.ErrCodeInvalidDimensions {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDimensions)
	}

	_, err = d.Layout(report.Report{ID: "empty"}, 800)
	if errors.GetCode(err) != errors.ErrCodeInvalidReport {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidReport)
	}
}
