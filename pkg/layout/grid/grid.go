// Package grid drives layout for a whole report: it takes the measured
// viewport width, allocates per-cell widths from unit weights, resolves
// every block's height, and turns resolutions into applied styles. Style
// computation is a pure value transform; applying it to a rendering
// surface is the caller's side effect.
package grid

import (
	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/report"
)

// DefaultBlockSpacingPx separates stacked blocks.
const DefaultBlockSpacingPx = 16.0

// BlockStyle is the value applied to a block's rendering surface.
type BlockStyle struct {
	HeightPx           float64            `json:"heightPx"`
	BaseFontSizePx     float64            `json:"baseFontSizePx"`
	KPIValueFontSizePx map[string]float64 `json:"kpiValueFontSizePx,omitempty"`

	// Degraded marks the safe placeholder used when a published block
	// resolves to a structural failure. Degraded blocks render a notice
	// instead of content.
	Degraded bool `json:"degraded,omitempty"`
}

// ComputeBlockStyle derives the applied style from a resolution.
func ComputeBlockStyle(res resolve.Resolution) BlockStyle {
	return BlockStyle{
		HeightPx:           res.HeightPx,
		BaseFontSizePx:     res.Typography.BaseFontSizePx,
		KPIValueFontSizePx: res.Typography.KPIValueFontSizePx,
	}
}

// BlockLayout is one block's resolved geometry within a report layout.
type BlockLayout struct {
	BlockID      string             `json:"blockId"`
	CellWidthsPx []float64          `json:"cellWidthsPx"`
	Resolution   resolve.Resolution `json:"resolution"`
	Style        BlockStyle         `json:"style"`
}

// Layout is the resolved geometry of a whole report at one width.
type Layout struct {
	WidthPx       float64       `json:"widthPx"`
	Blocks        []BlockLayout `json:"blocks"`
	TotalHeightPx float64       `json:"totalHeightPx"`
}

// Driver resolves reports against a viewport width. Published reports get
// a degraded placeholder for structurally failed blocks; drafts surface
// the failure untouched so the editor can block publish.
type Driver struct {
	Engine         *resolve.Engine
	BlockSpacingPx float64

	// Published switches priority-4 handling from pass-through to the
	// degraded placeholder.
	Published bool
}

// NewDriver creates a Driver with default spacing.
func NewDriver(engine *resolve.Engine) *Driver {
	return &Driver{Engine: engine, BlockSpacingPx: DefaultBlockSpacingPx}
}

// Layout resolves every block of the report at the given width.
func (d *Driver) Layout(rep report.Report, widthPx float64) (Layout, error) {
	if widthPx <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidDimensions,
			"viewport width must be positive, got %.2f", widthPx)
	}
	if err := rep.Validate(); err != nil {
		return Layout{}, err
	}

	out := Layout{WidthPx: widthPx, Blocks: make([]BlockLayout, 0, len(rep.Blocks))}
	for _, block := range rep.Blocks {
		res, err := d.Engine.Resolve(block, widthPx)
		if err != nil {
			return Layout{}, err
		}

		style := ComputeBlockStyle(res)
		if res.PublishBlocked && d.Published {
			style = d.degradedStyle(widthPx)
		}

		out.Blocks = append(out.Blocks, BlockLayout{
			BlockID:      block.ID,
			CellWidthsPx: cellWidths(block, widthPx),
			Resolution:   res,
			Style:        style,
		})
		out.TotalHeightPx += style.HeightPx
	}
	if n := len(out.Blocks); n > 1 {
		out.TotalHeightPx += float64(n-1) * d.BlockSpacingPx
	}
	return out, nil
}

// degradedStyle is the safe placeholder for a published block whose
// configuration no longer fits: baseline height, floor font, no content.
func (d *Driver) degradedStyle(widthPx float64) BlockStyle {
	policy := d.Engine.Policy()
	return BlockStyle{
		HeightPx:       policy.BaselineAspect.HeightFor(widthPx),
		BaseFontSizePx: policy.Limits.FloorPx,
		Degraded:       true,
	}
}

func cellWidths(block report.Block, widthPx float64) []float64 {
	boxes := resolve.Boxes(block, widthPx)
	widths := make([]float64, len(boxes))
	for i, b := range boxes {
		widths[i] = b.WidthPx
	}
	return widths
}
