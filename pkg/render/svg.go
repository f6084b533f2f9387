package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/statboard/statboard/pkg/layout/grid"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/report"
)

const previewCSS = `
    .block { fill: white; stroke: #d0d0d0; stroke-width: 1; }
    .block.degraded { fill: #f5f5f5; stroke-dasharray: 4 3; }
    .cell { fill: none; stroke: #ebebeb; stroke-width: 1; }
    text { font-family: -apple-system, "Segoe UI", sans-serif; fill: #1a1a1a; }
    .muted { fill: #8a8a8a; }
    .bar { fill: #4c7fb5; }
    .pie { fill: #4c7fb5; stroke: white; stroke-width: 2; }
    .swatch { fill: #4c7fb5; }
    .rule { stroke: #ebebeb; stroke-width: 1; }`

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	m            measure.Measurer
	spacingPx    float64
	cellOutlines bool
}

// WithMeasurer supplies the measurer used to wrap text content. Defaults
// to the estimator, matching the engine's fallback.
func WithMeasurer(m measure.Measurer) SVGOption { return func(r *svgRenderer) { r.m = m } }

// WithBlockSpacing overrides the vertical gap between blocks.
func WithBlockSpacing(px float64) SVGOption { return func(r *svgRenderer) { r.spacingPx = px } }

// WithCellOutlines draws cell boundaries, useful in the editor preview.
func WithCellOutlines() SVGOption { return func(r *svgRenderer) { r.cellOutlines = true } }

// RenderSVG renders a report at its resolved layout. Blocks stack top to
// bottom; each block draws its cells at the widths and font sizes the
// layout carries. Degraded blocks render a placeholder notice instead of
// content.
func RenderSVG(rep report.Report, l grid.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{m: measure.NewEstimator(), spacingPx: grid.DefaultBlockSpacingPx}
	for _, opt := range opts {
		opt(&r)
	}

	blocks := make(map[string]report.Block, len(rep.Blocks))
	for _, b := range rep.Blocks {
		blocks[b.ID] = b
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.WidthPx, l.TotalHeightPx, l.WidthPx, l.TotalHeightPx)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", previewCSS)

	y := 0.0
	for i, bl := range l.Blocks {
		if i > 0 {
			y += r.spacingPx
		}
		r.renderBlock(&buf, blocks[bl.BlockID], bl, y)
		y += bl.Style.HeightPx
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderBlock(buf *bytes.Buffer, block report.Block, bl grid.BlockLayout, y float64) {
	class := "block"
	if bl.Style.Degraded {
		class = "block degraded"
	}
	width := sum(bl.CellWidthsPx)
	fmt.Fprintf(buf, `  <rect id="block-%s" class=%q x="0" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		html.EscapeString(bl.BlockID), class, y, width, bl.Style.HeightPx)

	if bl.Style.Degraded {
		font := bl.Style.BaseFontSizePx
		fmt.Fprintf(buf, `  <text class="muted" x="%.1f" y="%.1f" font-size="%.2f" text-anchor="middle">%s</text>`+"\n",
			width/2, y+bl.Style.HeightPx/2, font,
			"This block needs attention. Edit the report to restore it.")
		return
	}

	x := 0.0
	for i, cell := range block.Cells {
		if i >= len(bl.CellWidthsPx) {
			break
		}
		w := bl.CellWidthsPx[i]
		if r.cellOutlines {
			fmt.Fprintf(buf, `  <rect class="cell" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
				x, y, w, bl.Style.HeightPx)
		}
		r.renderCell(buf, cell, bl.Style, x, y, w)
		x += w
	}
}

func (r *svgRenderer) renderCell(buf *bytes.Buffer, cell report.Cell, style grid.BlockStyle, x, y, w float64) {
	font := style.BaseFontSizePx
	switch cell.BodyType {
	case report.BodyText:
		r.renderText(buf, cell.Text, font, x, y, w, style.HeightPx)
	case report.BodyTable:
		r.renderTable(buf, cell.Table, font, x, y, w)
	case report.BodyPie:
		r.renderPie(buf, cell.Series, font, x, y, w, style.HeightPx)
	case report.BodyBar:
		r.renderBar(buf, cell.Series, x, y, w, style.HeightPx)
	case report.BodyKPI:
		valueFont := style.KPIValueFontSizePx[cell.ChartID]
		if valueFont <= 0 {
			valueFont = font
		}
		r.renderKPI(buf, cell.KPI, font, valueFont, x, y, w, style.HeightPx)
	case report.BodyImage:
		fmt.Fprintf(buf, `  <rect class="cell" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			x, y, w, style.HeightPx)
		fmt.Fprintf(buf, `  <text class="muted" x="%.1f" y="%.1f" font-size="%.2f" text-anchor="middle">%s</text>`+"\n",
			x+w/2, y+style.HeightPx/2, font, cell.Image.AspectRatio.String())
	}
}

func (r *svgRenderer) renderText(buf *bytes.Buffer, content string, font, x, y, w, h float64) {
	lines := measure.Wrap(r.m, content, w, font)
	lh := r.m.LineHeight(font)
	ty := y + lh
	for _, line := range lines {
		if ty > y+h {
			break
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.2f">%s</text>`+"\n",
			x, ty, font, html.EscapeString(line))
		ty += lh
	}
}

func (r *svgRenderer) renderTable(buf *bytes.Buffer, table *report.TableData, font, x, y, w float64) {
	if table == nil || len(table.Header) == 0 {
		return
	}
	lh := r.m.LineHeight(font)
	colW := w / float64(len(table.Header))
	ty := y + lh
	for col, head := range table.Header {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.2f" font-weight="bold">%s</text>`+"\n",
			x+float64(col)*colW, ty, font, html.EscapeString(head))
	}
	for _, row := range table.Rows {
		ty += lh
		fmt.Fprintf(buf, `  <line class="rule" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			x, ty-lh+2, x+w, ty-lh+2)
		for col, val := range row {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.2f">%s</text>`+"\n",
				x+float64(col)*colW, ty, font, html.EscapeString(val))
		}
	}
}

func (r *svgRenderer) renderPie(buf *bytes.Buffer, series []report.DataPoint, font, x, y, w, h float64) {
	lh := r.m.LineHeight(font)
	legendH := float64(len(series)) * lh
	d := w
	if rem := h - legendH; rem < d {
		d = rem
	}
	if d < 0 {
		d = 0
	}
	fmt.Fprintf(buf, `  <circle class="pie" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
		x+w/2, y+d/2, d/2)
	ty := y + d + lh
	for _, p := range series {
		fmt.Fprintf(buf, `  <rect class="swatch" x="%.1f" y="%.1f" width="10" height="10"/>`+"\n", x, ty-9)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.2f">%s</text>`+"\n",
			x+14, ty, font, html.EscapeString(p.Label))
		ty += lh
	}
}

func (r *svgRenderer) renderBar(buf *bytes.Buffer, series []report.DataPoint, x, y, w, h float64) {
	n := len(series)
	if n == 0 {
		return
	}
	max := series[0].Value
	for _, p := range series {
		if p.Value > max {
			max = p.Value
		}
	}
	if max <= 0 {
		max = 1
	}
	barW := w / float64(n)
	for i, p := range series {
		bh := h * p.Value / max
		fmt.Fprintf(buf, `  <rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			x+float64(i)*barW+2, y+h-bh, barW-4, bh)
	}
}

func (r *svgRenderer) renderKPI(buf *bytes.Buffer, kpi *report.KPIData, font, valueFont, x, y, w, h float64) {
	if kpi == nil {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.2f" text-anchor="middle">%s</text>`+"\n",
		x+w/2, y+h/2, valueFont, html.EscapeString(kpi.Value))
	if kpi.Label != "" {
		fmt.Fprintf(buf, `  <text class="muted" x="%.1f" y="%.1f" font-size="%.2f" text-anchor="middle">%s</text>`+"\n",
			x+w/2, y+h/2+r.m.LineHeight(font), font, html.EscapeString(kpi.Label))
	}
}

func sum(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total
}
