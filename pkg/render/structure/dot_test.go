package structure

import (
	"strings"
	"testing"

	"github.com/statboard/statboard/pkg/layout/grid"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/report"
)

func TestToDOT(t *testing.T) {
	rep := report.Report{
		ID:    "r1",
		Title: "Weekly events",
		Blocks: []report.Block{
			{ID: "b1", Cells: []report.Cell{
				{ChartID: "note", Width: 1, BodyType: report.BodyText, Text: "hello"},
				{ChartID: "total", Width: 2, BodyType: report.BodyKPI, KPI: &report.KPIData{Value: "9"}},
			}},
		},
	}
	l := grid.Layout{
		WidthPx: 800,
		Blocks: []grid.BlockLayout{{
			BlockID:    "b1",
			Resolution: resolve.Resolution{HeightPx: 200, Priority: resolve.PriorityReadability},
			Style:      grid.BlockStyle{HeightPx: 200, BaseFontSizePx: 16},
		}},
	}

	dot := ToDOT(rep, l, Options{Detailed: true})
	for _, want := range []string{
		"digraph report {",
		`"Weekly events"`,
		`"r1" -> "b1"`,
		`"b1" -> "b1/note"`,
		`"b1" -> "b1/total"`,
		"readability",
		"200px @ 16.00px font",
		"kpi x2",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot missing %q", want)
		}
	}
}

func TestToDOTMarksBlockedBlocks(t *testing.T) {
	rep := report.Report{ID: "r1", Blocks: []report.Block{
		{ID: "b1", Cells: []report.Cell{
			{ChartID: "note", Width: 1, BodyType: report.BodyText, Text: "hello"},
		}},
	}}
	l := grid.Layout{Blocks: []grid.BlockLayout{{
		BlockID:    "b1",
		Resolution: resolve.Resolution{Priority: resolve.PriorityStructuralFailure, PublishBlocked: true},
	}}}

	dot := ToDOT(rep, l, Options{})
	if !strings.Contains(dot, "color=red") {
		t.Error("publish-blocked block should be outlined in red")
	}
}
