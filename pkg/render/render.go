// Package render turns resolved report layouts into output artifacts.
//
// # Overview
//
// Rendering is a pure function of a report and its resolved layout: every
// height and font size was already decided by the layout engine, so the
// renderers here only place content. The package provides:
//
//   - SVG preview rendering of a whole report
//   - JSON serialization of a layout for API consumers
//   - Generic format conversion (SVG to PDF/PNG)
//   - Structure diagrams (in [structure] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := render.RenderSVG(rep, layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [structure]: github.com/statboard/statboard/pkg/render/structure
package render

import "encoding/json"

// RenderJSON serializes a layout for API consumers and debugging.
func RenderJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
