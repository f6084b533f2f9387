package fit

import (
	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/report"
)

// =============================================================================
// Remediations - Structural Fixes Signalled by Validators
// =============================================================================

// Remediation identifies a structural change that makes (or would make)
// content fit. Remediations are never scrolling or truncation.
type Remediation string

const (
	// RemediationSplitBlock: move some cells into a new block.
	RemediationSplitBlock Remediation = "split_block"

	// RemediationAggregateLegend: collapse a pie legend to Top-N + Other.
	RemediationAggregateLegend Remediation = "aggregate_legend"

	// RemediationReduceTableRows: show fewer table rows.
	RemediationReduceTableRows Remediation = "reduce_table_rows"

	// RemediationFlipBarOrientation: render bars as horizontal rows.
	RemediationFlipBarOrientation Remediation = "flip_bar_orientation"

	// RemediationThinBarLabels: label every other bar only.
	RemediationThinBarLabels Remediation = "thin_bar_labels"
)

// Describe returns the author-facing description of the remediation, used
// verbatim as an editor suggestion.
func (r Remediation) Describe() string {
	switch r {
	case RemediationSplitBlock:
		return "Split this block into two"
	case RemediationAggregateLegend:
		return "Aggregate the pie legend to Top-N + Other"
	case RemediationReduceTableRows:
		return "Reduce the number of visible table rows"
	case RemediationFlipBarOrientation:
		return "Flip the bar chart to horizontal orientation"
	case RemediationThinBarLabels:
		return "Label every other bar only"
	default:
		return string(r)
	}
}

// =============================================================================
// Parameters and Inputs
// =============================================================================

// Params holds the geometry constants the validators work with. All values
// are pixels unless stated otherwise.
type Params struct {
	// CellPaddingPx is the inner padding on every side of a cell.
	CellPaddingPx float64

	// TableRowPaddingPx is the vertical padding inside one body row; the
	// minimum row height is lineHeight + 2*TableRowPaddingPx.
	TableRowPaddingPx float64

	// TableHeaderPaddingPx is the vertical padding inside the header row.
	TableHeaderPaddingPx float64

	// MinPieRadiusPx is the smallest pie radius considered readable.
	MinPieRadiusPx float64

	// PieLegendMax is the reflow/aggregation threshold K: a legend with at
	// most K entries may reflow vertically; more entries aggregate to
	// Top-(K-1) + Other.
	PieLegendMax int

	// LegendSwatchPx is the width of one legend color swatch.
	LegendSwatchPx float64

	// LegendGapPx separates legend entries and the legend from the pie.
	LegendGapPx float64

	// MinBarPlotPx is the minimum plot-area height for vertical bars.
	// Horizontal bar rows take their thickness from the wrapped label.
	MinBarPlotPx float64

	// BarGapPx separates horizontal bar rows.
	BarGapPx float64

	// BarLabelMaxLines caps wrapped bar label height.
	BarLabelMaxLines int

	// BarLabelShare is the fraction of cell width granted to the label
	// column in horizontal orientation.
	BarLabelShare float64
}

// DefaultParams returns the production geometry constants.
func DefaultParams() Params {
	return Params{
		CellPaddingPx:        8,
		TableRowPaddingPx:    6,
		TableHeaderPaddingPx: 8,
		MinPieRadiusPx:       40,
		PieLegendMax:         6,
		LegendSwatchPx:       12,
		LegendGapPx:          6,
		MinBarPlotPx:         48,
		BarGapPx:             4,
		BarLabelMaxLines:     2,
		BarLabelShare:        0.4,
	}
}

// Constraints is the box and font-size pair a validator judges against.
type Constraints struct {
	WidthPx     float64
	HeightPx    float64
	FloorFontPx float64
	FontPx      float64 // candidate size under test
}

func (c Constraints) validate() error {
	if err := errors.ValidateDimensions(c.WidthPx, c.HeightPx); err != nil {
		return err
	}
	if c.FontPx <= 0 || c.FloorFontPx <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"font sizes must be positive, got candidate %.2f floor %.2f", c.FontPx, c.FloorFontPx)
	}
	return nil
}

// Result is a fit verdict.
type Result struct {
	// Fits reports whether the content renders completely in the box.
	Fits bool

	// RequiredHeightPx is the height at which the content would fit at the
	// floor font size. Zero when Fits.
	RequiredHeightPx float64

	// Remediations carries structural signals. On a fit, these are the
	// changes the renderer must apply (e.g. aggregated legend); on a
	// non-fit, the changes worth suggesting to the author.
	Remediations []Remediation
}

// =============================================================================
// Validator
// =============================================================================

// Validator bundles the measurement capability and geometry constants.
// It is stateless beyond its configuration and safe for concurrent use.
type Validator struct {
	M      measure.Measurer
	Params Params
}

// New creates a Validator with the given measurer and default params.
func New(m measure.Measurer) *Validator {
	return &Validator{M: m, Params: DefaultParams()}
}

// Cell dispatches to the validator matching the cell's body type.
// KPI and image cells fit by definition.
func (v *Validator) Cell(cell report.Cell, c Constraints) (Result, error) {
	switch cell.BodyType {
	case report.BodyText:
		return v.Text(cell.Text, c)
	case report.BodyTable:
		if cell.Table == nil {
			return Result{}, errors.New(errors.ErrCodeInvalidCell, "cell %s: table body without table data", cell.ChartID)
		}
		return v.Table(*cell.Table, c)
	case report.BodyPie:
		return v.Pie(cell.Series, c)
	case report.BodyBar:
		return v.Bar(cell.Series, c)
	case report.BodyKPI, report.BodyImage:
		return Result{Fits: true}, nil
	default:
		return Result{}, errors.New(errors.ErrCodeInvalidCell, "cell %s: unknown body type %q", cell.ChartID, cell.BodyType)
	}
}

// inner returns the content box after cell padding.
func (v *Validator) inner(c Constraints) (w, h float64) {
	w = c.WidthPx - 2*v.Params.CellPaddingPx
	h = c.HeightPx - 2*v.Params.CellPaddingPx
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// pad converts an inner content height back to an outer cell height.
func (v *Validator) pad(innerHeight float64) float64 {
	return innerHeight + 2*v.Params.CellPaddingPx
}
