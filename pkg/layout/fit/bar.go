package fit

import (
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/report"
)

// Bar validates a bar chart. Orientation and label density are negotiable
// before height is: vertical bars with full labels are tried first, then a
// horizontal flip, then vertical bars labelling every other bar. Whatever
// makes the content fit is reported as a remediation signal on a fitting
// result.
func (v *Validator) Bar(series []report.DataPoint, c Constraints) (Result, error) {
	if err := c.validate(); err != nil {
		return Result{}, err
	}

	innerW, innerH := v.inner(c)

	if v.verticalFits(series, innerW, innerH, c.FontPx, false) {
		return Result{Fits: true}, nil
	}
	if v.horizontalHeight(series, innerW, c.FontPx) <= innerH {
		return Result{Fits: true, Remediations: []Remediation{RemediationFlipBarOrientation}}, nil
	}
	if v.verticalFits(series, innerW, innerH, c.FontPx, true) {
		return Result{Fits: true, Remediations: []Remediation{RemediationThinBarLabels}}, nil
	}

	// The horizontal stack at the floor size is the cheapest layout that
	// shows every bar with its label.
	return Result{
		Fits:             false,
		RequiredHeightPx: v.pad(v.horizontalHeight(series, innerW, c.FloorFontPx)),
		Remediations:     []Remediation{RemediationSplitBlock},
	}, nil
}

// verticalFits checks the column layout: bars side by side, labels wrapped
// underneath. With thinning, only every other bar is labelled, doubling the
// label slot.
func (v *Validator) verticalFits(series []report.DataPoint, innerW, innerH, fontPx float64, thin bool) bool {
	n := len(series)
	if n == 0 {
		return true
	}

	perBar := (innerW - float64(n-1)*v.Params.BarGapPx) / float64(n)
	if perBar <= 0 {
		return false
	}
	slotW := perBar
	if thin {
		slotW = 2*perBar + v.Params.BarGapPx
	}

	maxLines := 0
	for i, p := range series {
		if thin && i%2 == 1 {
			continue
		}
		lines := len(measure.Wrap(v.M, p.Label, slotW, fontPx))
		if lines > v.Params.BarLabelMaxLines {
			return false
		}
		if lines > maxLines {
			maxLines = lines
		}
	}

	labelBlock := float64(maxLines) * v.M.LineHeight(fontPx)
	plot := innerH - labelBlock - v.Params.BarGapPx
	return plot >= v.Params.MinBarPlotPx
}

// horizontalHeight is the stacked height of the row layout: each bar gets a
// row as tall as its wrapped label, with the label column taking its
// configured share of the width.
func (v *Validator) horizontalHeight(series []report.DataPoint, innerW, fontPx float64) float64 {
	labelW := v.Params.BarLabelShare * innerW
	lh := v.M.LineHeight(fontPx)

	total := 0.0
	for _, p := range series {
		rowH := v.M.TextHeight(p.Label, labelW, fontPx)
		if rowH < lh {
			rowH = lh
		}
		total += rowH
	}
	if n := len(series); n > 1 {
		total += float64(n-1) * v.Params.BarGapPx
	}
	return total
}
