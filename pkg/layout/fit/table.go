package fit

import (
	"github.com/statboard/statboard/pkg/report"
)

// Table validates a header row plus whole body rows. A row is either fully
// visible or not rendered at all; the table never clips a row mid-glyph and
// never grows a scrollbar.
func (v *Validator) Table(data report.TableData, c Constraints) (Result, error) {
	if err := c.validate(); err != nil {
		return Result{}, err
	}

	_, innerH := v.inner(c)
	if v.tableHeight(len(data.Rows), c.FontPx) <= innerH {
		return Result{Fits: true}, nil
	}

	return Result{
		Fits:             false,
		RequiredHeightPx: v.pad(v.tableHeight(len(data.Rows), c.FloorFontPx)),
		Remediations:     []Remediation{RemediationReduceTableRows, RemediationSplitBlock},
	}, nil
}

// MaxVisibleRows returns how many whole body rows fit under the header in
// the given box at the given font size. Used when reduce_table_rows is
// applied.
func (v *Validator) MaxVisibleRows(c Constraints) int {
	_, innerH := v.inner(c)
	lh := v.M.LineHeight(c.FontPx)
	remaining := innerH - (lh + 2*v.Params.TableHeaderPaddingPx)
	rowH := lh + 2*v.Params.TableRowPaddingPx
	if remaining <= 0 || rowH <= 0 {
		return 0
	}
	return int(remaining / rowH)
}

// tableHeight is the inner height of a header plus n body rows.
func (v *Validator) tableHeight(rows int, fontPx float64) float64 {
	lh := v.M.LineHeight(fontPx)
	header := lh + 2*v.Params.TableHeaderPaddingPx
	row := lh + 2*v.Params.TableRowPaddingPx
	return header + float64(rows)*row
}
