package typography

// KPIValueShare is the vertical share of a KPI cell granted to the value;
// the remainder holds the label.
const KPIValueShare = 0.6

// KPIValueSize returns the largest font size at which a KPI value spans a
// single line within its cell width and its line box stays within the
// value's vertical share. The value is decorative-scale, so it is bounded
// below by the floor but not by the base-size ceiling.
func (c *Calculator) KPIValueSize(value string, widthPx, heightPx float64) float64 {
	p := c.V.Params
	innerW := widthPx - 2*p.CellPaddingPx
	innerH := heightPx - 2*p.CellPaddingPx
	if innerW <= 0 || innerH <= 0 || value == "" {
		return c.Limits.FloorPx
	}

	const probe = 10.0
	size := 0.0
	if w := c.V.M.LineWidth(value, probe); w > 0 {
		size = probe * innerW / w
	}
	if lh := c.V.M.LineHeight(probe); lh > 0 {
		if s := probe * innerH * KPIValueShare / lh; size == 0 || s < size {
			size = s
		}
	}
	return c.Limits.snap(size)
}

// sizeKPIs fills in the per-cell KPI value sizes on a verdict.
func (c *Calculator) sizeKPIs(out *BlockTypography, cells []CellBox, heightPx float64) {
	for _, cb := range cells {
		if cb.Cell.KPI == nil {
			continue
		}
		if out.KPIValueFontSizePx == nil {
			out.KPIValueFontSizePx = make(map[string]float64)
		}
		out.KPIValueFontSizePx[cb.Cell.ChartID] = c.KPIValueSize(cb.Cell.KPI.Value, cb.WidthPx, heightPx)
	}
}
