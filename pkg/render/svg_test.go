package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/statboard/statboard/pkg/layout/grid"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/report"
)

func previewFixture() (report.Report, grid.Layout) {
	rep := report.Report{
		ID:    "r1",
		Title: "Weekly events",
		Blocks: []report.Block{
			{ID: "b1", Cells: []report.Cell{
				{ChartID: "note", Width: 1, BodyType: report.BodyText, Text: "Signups rose all week"},
				{ChartID: "total", Width: 1, BodyType: report.BodyKPI, KPI: &report.KPIData{Value: "812", Label: "signups"}},
			}},
			{ID: "b2", Cells: []report.Cell{
				{ChartID: "share", Width: 1, BodyType: report.BodyBar, Series: []report.DataPoint{
					{Label: "web", Value: 10}, {Label: "mobile", Value: 5},
				}},
			}},
		},
	}
	l := grid.Layout{
		WidthPx: 800,
		Blocks: []grid.BlockLayout{
			{
				BlockID:      "b1",
				CellWidthsPx: []float64{400, 400},
				Resolution:   resolve.Resolution{HeightPx: 200, Priority: resolve.PriorityReadability},
				Style: grid.BlockStyle{HeightPx: 200, BaseFontSizePx: 16,
					KPIValueFontSizePx: map[string]float64{"total": 48}},
			},
			{
				BlockID:      "b2",
				CellWidthsPx: []float64{800},
				Resolution:   resolve.Resolution{HeightPx: 200, Priority: resolve.PriorityReadability},
				Style:        grid.BlockStyle{HeightPx: 200, BaseFontSizePx: 16},
			},
		},
		TotalHeightPx: 416,
	}
	return rep, l
}

func TestRenderSVG(t *testing.T) {
	rep, l := previewFixture()
	svg := string(RenderSVG(rep, l, WithCellOutlines()))

	for _, want := range []string{
		`viewBox="0 0 800.0 416.0"`,
		`id="block-b1"`,
		`id="block-b2"`,
		"Signups rose all week",
		`font-size="48.00"`, // KPI value uses its own size
		`class="bar"`,
		`class="cell"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg is not closed")
	}
}

func TestRenderSVGDegradedBlock(t *testing.T) {
	rep, l := previewFixture()
	l.Blocks[0].Style = grid.BlockStyle{HeightPx: 200, BaseFontSizePx: 12, Degraded: true}

	svg := string(RenderSVG(rep, l))
	if !strings.Contains(svg, `class="block degraded"`) {
		t.Error("degraded block should carry the degraded class")
	}
	if !strings.Contains(svg, "needs attention") {
		t.Error("degraded block should render the notice")
	}
	if strings.Contains(svg, "Signups rose all week") {
		t.Error("degraded block must not render content")
	}
}

func TestRenderSVGEscapesContent(t *testing.T) {
	rep, l := previewFixture()
	rep.Blocks[0].Cells[0].Text = `<script>alert("x")</script>`

	svg := string(RenderSVG(rep, l))
	if strings.Contains(svg, "<script>alert") {
		t.Error("text content must be escaped")
	}
}

func TestRenderJSON(t *testing.T) {
	_, l := previewFixture()
	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if !bytes.Contains(data, []byte(`"totalHeightPx": 416`)) {
		t.Errorf("json missing total height: %s", data)
	}
}
