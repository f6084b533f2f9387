package fit

import (
	"sort"

	"github.com/statboard/statboard/pkg/report"
)

// OtherLabel names the aggregated remainder slice of a collapsed legend.
const OtherLabel = "Other"

// AggregateSeries collapses a series to its top k-1 entries by value plus an
// "Other" entry carrying the remainder. Series with at most k entries are
// returned unchanged. The input is never mutated.
func AggregateSeries(series []report.DataPoint, k int) []report.DataPoint {
	if k < 2 || len(series) <= k {
		return series
	}
	sorted := make([]report.DataPoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	out := sorted[: k-1 : k]
	other := report.DataPoint{Label: OtherLabel}
	for _, p := range sorted[k-1:] {
		other.Value += p.Value
	}
	return append(out, other)
}

// Pie validates a pie chart with its legend. Legends with more entries than
// the aggregation threshold collapse to Top-N + Other first; the collapse is
// a remediation signal on the result, not a failure. The pie itself must
// keep at least the minimum readable radius after the legend takes its
// share of the box.
func (v *Validator) Pie(series []report.DataPoint, c Constraints) (Result, error) {
	if err := c.validate(); err != nil {
		return Result{}, err
	}

	var applied []Remediation
	entries := series
	if len(series) > v.Params.PieLegendMax {
		entries = AggregateSeries(series, v.Params.PieLegendMax)
		applied = append(applied, RemediationAggregateLegend)
	}

	innerW, innerH := v.inner(c)
	legendH := v.legendHeight(entries, innerW, c.FontPx)

	available := innerH - legendH - v.Params.LegendGapPx
	diameter := available
	if innerW < diameter {
		diameter = innerW
	}
	if diameter/2 >= v.Params.MinPieRadiusPx {
		return Result{Fits: true, Remediations: applied}, nil
	}

	required := 2*v.Params.MinPieRadiusPx + v.Params.LegendGapPx +
		v.legendHeight(entries, innerW, c.FloorFontPx)
	return Result{
		Fits:             false,
		RequiredHeightPx: v.pad(required),
		Remediations:     append(applied, RemediationSplitBlock),
	}, nil
}

// legendHeight lays legend entries into greedy horizontal rows and returns
// the stacked height. One entry is swatch + gap + label; entries in a row
// are separated by the legend gap.
func (v *Validator) legendHeight(entries []report.DataPoint, widthPx, fontPx float64) float64 {
	if len(entries) == 0 {
		return 0
	}

	entryH := v.M.LineHeight(fontPx)
	if v.Params.LegendSwatchPx > entryH {
		entryH = v.Params.LegendSwatchPx
	}

	rows := 1
	lineW := 0.0
	for _, e := range entries {
		w := v.Params.LegendSwatchPx + v.Params.LegendGapPx + v.M.LineWidth(e.Label, fontPx)
		if lineW == 0 {
			lineW = w
			continue
		}
		if lineW+v.Params.LegendGapPx+w <= widthPx {
			lineW += v.Params.LegendGapPx + w
		} else {
			rows++
			lineW = w
		}
	}
	return float64(rows)*entryH + float64(rows-1)*v.Params.LegendGapPx
}
