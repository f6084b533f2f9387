package resolve

import (
	"reflect"
	"strings"
	"testing"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/fit"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/report"
)

// square makes expected values round: every rune is half the font size
// wide, every line exactly one font size tall.
var square = measure.Estimator{CharWidthEm: 0.5, LineHeightEm: 1.0}

// newEngine drops cell padding so inner and outer heights coincide in the
// arithmetic below.
func newEngine() *Engine {
	p := DefaultPolicy()
	p.Fit.CellPaddingPx = 0
	return NewWithPolicy(square, p)
}

func textBlock(id, content string) report.Block {
	return report.Block{ID: id, Cells: []report.Cell{
		{ChartID: id + "-text", Width: 1, BodyType: report.BodyText, Text: content},
	}}
}

func intrinsicImageCell(id, ratio string) report.Cell {
	return report.Cell{ChartID: id, Width: 1, BodyType: report.BodyImage,
		Image: &report.ImageData{AspectRatio: report.MustRatio(ratio), Mode: report.ImageModeIntrinsic}}
}

func bigTable(rows int) *report.TableData {
	data := &report.TableData{Header: []string{"name", "count"}}
	for i := 0; i < rows; i++ {
		data.Rows = append(data.Rows, []string{"event", "1"})
	}
	return data
}

func TestResolveBaseline(t *testing.T) {
	e := newEngine()

	// One short text cell at 600px: the 4:1 baseline gives 150px, which
	// admits the floor immediately.
	got, err := e.Resolve(textBlock("b1", "Short note"), 600)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Priority != PriorityReadability {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityReadability)
	}
	if got.HeightPx != 150 {
		t.Errorf("HeightPx = %v, want 150", got.HeightPx)
	}
	if !got.CanIncrease || got.PublishBlocked {
		t.Errorf("flags = %+v, want CanIncrease and not blocked", got)
	}
	if got.Typography.BaseFontSizePx != 96 {
		t.Errorf("BaseFontSizePx = %v, want ceiling 96", got.Typography.BaseFontSizePx)
	}
}

func TestResolveIntrinsic(t *testing.T) {
	e := newEngine()
	block := report.Block{ID: "b2", Cells: []report.Cell{intrinsicImageCell("img", "16:9")}}

	got, err := e.Resolve(block, 800)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Priority != PriorityIntrinsic {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityIntrinsic)
	}
	// No-crop invariant: exactly the image height, never less.
	if got.HeightPx != 450 {
		t.Errorf("HeightPx = %v, want 800*9/16 = 450", got.HeightPx)
	}
}

func TestIntrinsicPrecedesOverride(t *testing.T) {
	e := newEngine()
	block := report.Block{
		ID:                  "b3",
		AspectRatioOverride: report.MustRatio("4:1"),
		Cells:               []report.Cell{intrinsicImageCell("img", "1:1")},
	}

	got, err := e.Resolve(block, 400)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Priority != PriorityIntrinsic {
		t.Errorf("Priority = %v, want intrinsic to win over the override", got.Priority)
	}
	if got.HeightPx != 400 {
		t.Errorf("HeightPx = %v, want the 1:1 image height 400", got.HeightPx)
	}
}

func TestResolveAspectOverride(t *testing.T) {
	e := newEngine()
	block := report.Block{
		ID:                  "b4",
		AspectRatioOverride: report.MustRatio("4:6"),
		Cells: []report.Cell{
			{ChartID: "tbl", Width: 2, BodyType: report.BodyTable, Table: bigTable(5)},
		},
	}

	got, err := e.Resolve(block, 500)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Priority != PriorityAspectOverride {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityAspectOverride)
	}
	if got.HeightPx != 750 {
		t.Errorf("HeightPx = %v, want 500*6/4 = 750", got.HeightPx)
	}
}

func TestOverrideIgnoredOnIneligibleBlock(t *testing.T) {
	e := newEngine()

	// A pie cell makes the override illegal; the engine falls back to
	// readability enforcement rather than guessing.
	block := report.Block{
		ID:                  "b5",
		AspectRatioOverride: report.MustRatio("1:2"),
		Cells: []report.Cell{
			{ChartID: "pie", Width: 1, BodyType: report.BodyPie,
				Series: []report.DataPoint{{Label: "a", Value: 1}, {Label: "b", Value: 2}}},
		},
	}

	got, err := e.Resolve(block, 600)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Priority != PriorityReadability {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityReadability)
	}
}

func TestEscalationGrowsToRequiredHeight(t *testing.T) {
	e := newEngine()
	content := strings.TrimSpace(strings.Repeat("alpha beta gamma delta ", 30))
	block := textBlock("b6", content)

	// The floor needs more than the 100px baseline at 400px width.
	required := square.TextHeight(content, 400, 12)
	if required <= 100 {
		t.Fatalf("test content too short: required %v", required)
	}

	got, err := e.Resolve(block, 400)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Priority != PriorityReadability {
		t.Errorf("Priority = %v, want %v", got.Priority, PriorityReadability)
	}
	if got.HeightPx != required {
		t.Errorf("HeightPx = %v, want required height %v", got.HeightPx, required)
	}
	if !got.CanIncrease {
		t.Error("CanIncrease should be set after growth")
	}
	if !got.Typography.FloorAdmissible {
		t.Error("grown height must admit the floor")
	}
}

func TestStructuralFailure(t *testing.T) {
	e := newEngine()
	e.calc.V.Params.TableRowPaddingPx = 6
	e.calc.V.Params.TableHeaderPaddingPx = 14

	// 50 rows need 40 + 50*24 = 1240, over the author's 600px maximum.
	block := report.Block{
		ID:                 "b7",
		MaxAllowedHeightPx: 600,
		Cells: []report.Cell{
			{ChartID: "tbl", Width: 2, BodyType: report.BodyTable, Table: bigTable(50)},
		},
	}

	got, err := e.Resolve(block, 400)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Priority != PriorityStructuralFailure {
		t.Fatalf("Priority = %v, want %v", got.Priority, PriorityStructuralFailure)
	}
	if !got.PublishBlocked {
		t.Error("PublishBlocked should be set")
	}
	if got.HeightPx != 0 {
		t.Errorf("HeightPx = %v, want no usable height", got.HeightPx)
	}
	wantActions := map[fit.Remediation]bool{
		fit.RemediationReduceTableRows: false,
		fit.RemediationSplitBlock:      false,
	}
	for _, a := range got.RequiredActions {
		if _, ok := wantActions[a]; ok {
			wantActions[a] = true
		}
	}
	for a, seen := range wantActions {
		if !seen {
			t.Errorf("RequiredActions = %v, missing %v", got.RequiredActions, a)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	e := newEngine()
	block := report.Block{ID: "b8", Cells: []report.Cell{
		{ChartID: "txt", Width: 1, BodyType: report.BodyText, Text: "alpha beta gamma"},
		{ChartID: "kpi", Width: 1, BodyType: report.BodyKPI, KPI: &report.KPIData{Value: "42", Label: "total"}},
	}}

	first, err := e.Resolve(block, 640)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := e.Resolve(block, 640)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolutions differ:\n%+v\n%+v", first, second)
	}
}

func TestMinAllowedHeightLiftsBaseline(t *testing.T) {
	e := newEngine()
	block := textBlock("b9", "Short note")
	block.MinAllowedHeightPx = 300

	got, err := e.Resolve(block, 600)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.HeightPx != 300 {
		t.Errorf("HeightPx = %v, want author minimum 300", got.HeightPx)
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	e := newEngine()

	_, err := e.Resolve(textBlock("b10", "x"), 0)
	if errors.GetCode(err) != errors.ErrCodeInvalidDimensions {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDimensions)
	}

	_, err = e.Resolve(report.Block{ID: "empty"}, 500)
	if errors.GetCode(err) != errors.ErrCodeInvalidBlock {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidBlock)
	}
}
