// Package structure renders report structure diagrams: the report, its
// blocks, and their cells as a directed graph annotated with resolved
// heights and priorities. Useful for debugging a resolution chain without
// reading JSON.
package structure

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/statboard/statboard/pkg/layout/grid"
	"github.com/statboard/statboard/pkg/report"
)

// Options configures structure diagram rendering.
type Options struct {
	// Detailed includes resolved heights, priorities, and font sizes in
	// node labels. When false, only ids and body types are shown.
	Detailed bool
}

// ToDOT converts a report and its layout to Graphviz DOT format. The
// resulting DOT string can be rendered with [RenderSVG]. Blocks whose
// resolution blocks publish are drawn with dashed red outlines.
func ToDOT(rep report.Report, l grid.Layout, opts Options) string {
	resolutions := make(map[string]grid.BlockLayout, len(l.Blocks))
	for _, bl := range l.Blocks {
		resolutions[bl.BlockID] = bl
	}

	var buf bytes.Buffer
	buf.WriteString("digraph report {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightyellow];\n", rep.ID, reportLabel(rep))

	for _, block := range rep.Blocks {
		bl, resolved := resolutions[block.ID]
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", block.ID, blockLabel(block, bl, resolved, opts.Detailed), blockAttrs(bl, resolved))
		fmt.Fprintf(&buf, "  %q -> %q;\n", rep.ID, block.ID)

		for _, cell := range block.Cells {
			nodeID := block.ID + "/" + cell.ChartID
			fmt.Fprintf(&buf, "  %q [label=%q];\n", nodeID, cellLabel(cell, opts.Detailed))
			fmt.Fprintf(&buf, "  %q -> %q;\n", block.ID, nodeID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func reportLabel(rep report.Report) string {
	if rep.Title != "" {
		return rep.Title
	}
	return rep.ID
}

func blockLabel(block report.Block, bl grid.BlockLayout, resolved, detailed bool) string {
	if !detailed || !resolved {
		return block.ID
	}
	return fmt.Sprintf("%s\n%s\n%.0fpx @ %.2fpx font",
		block.ID, bl.Resolution.Priority, bl.Style.HeightPx, bl.Style.BaseFontSizePx)
}

func blockAttrs(bl grid.BlockLayout, resolved bool) string {
	if resolved && bl.Resolution.PublishBlocked {
		return ", style=\"rounded,filled,dashed\", color=red"
	}
	return ""
}

func cellLabel(cell report.Cell, detailed bool) string {
	if !detailed {
		return cell.ChartID
	}
	return fmt.Sprintf("%s\n%s x%d", cell.ChartID, cell.BodyType, cell.Width)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz svg tag so the diagram scales to
// its container instead of rendering at point units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
