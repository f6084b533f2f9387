package typography

import (
	"math"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/fit"
	"github.com/statboard/statboard/pkg/report"
)

// =============================================================================
// Limits - Search Bounds
// =============================================================================

// Default search bounds. The floor is the minimum legible size, the ceiling
// the maximum stylistic size, the step the search granularity.
const (
	DefaultFloorPx   = 12.0
	DefaultCeilingPx = 96.0
	DefaultStepPx    = 0.25
)

// Limits bounds the base-size search.
type Limits struct {
	FloorPx   float64
	CeilingPx float64
	StepPx    float64
}

// DefaultLimits returns the production search bounds.
func DefaultLimits() Limits {
	return Limits{FloorPx: DefaultFloorPx, CeilingPx: DefaultCeilingPx, StepPx: DefaultStepPx}
}

func (l Limits) validate() error {
	if l.FloorPx <= 0 || l.CeilingPx < l.FloorPx || l.StepPx <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid typography limits: floor %.2f ceiling %.2f step %.2f", l.FloorPx, l.CeilingPx, l.StepPx)
	}
	return nil
}

// sizeAt maps a grid index to a font size.
func (l Limits) sizeAt(k int) float64 { return l.FloorPx + float64(k)*l.StepPx }

// snap quantizes a size down onto the grid, never below the floor.
func (l Limits) snap(size float64) float64 {
	if size <= l.FloorPx {
		return l.FloorPx
	}
	return l.sizeAt(int(math.Floor((size - l.FloorPx) / l.StepPx)))
}

// =============================================================================
// Calculator
// =============================================================================

// CellBox pairs a cell with the width the grid allocated to it.
type CellBox struct {
	Cell    report.Cell
	WidthPx float64
}

// BlockTypography is the calculator's verdict for one block.
type BlockTypography struct {
	// BaseFontSizePx applies to every non-KPI element of the block.
	BaseFontSizePx float64 `json:"baseFontSizePx"`

	// KPIValueFontSizePx holds the independently computed value size per
	// KPI cell, keyed by chart id.
	KPIValueFontSizePx map[string]float64 `json:"kpiValueFontSizePx,omitempty"`

	// FloorAdmissible is false when content overflows even at the floor
	// size; the height resolution engine must then grow the block.
	FloorAdmissible bool `json:"floorAdmissible"`

	// RequiredHeightPx is the tallest height any cell demanded at the
	// floor size. Zero when FloorAdmissible.
	RequiredHeightPx float64 `json:"requiredHeightPx,omitempty"`

	// Remediations are the structural signals the validators attached at
	// the decided size (or at the floor, when inadmissible).
	Remediations []fit.Remediation `json:"remediations,omitempty"`
}

// Calculator finds the largest admissible base size for a block.
// It is stateless beyond its configuration and safe for concurrent use.
type Calculator struct {
	V      *fit.Validator
	Limits Limits
}

// New creates a Calculator over the given validator with default limits.
func New(v *fit.Validator) *Calculator {
	return &Calculator{V: v, Limits: DefaultLimits()}
}

// Calculate finds the largest font size in [floor, ceiling] at which every
// participating cell fits the shared block height within its own width.
func (c *Calculator) Calculate(cells []CellBox, blockHeightPx float64) (BlockTypography, error) {
	if err := c.Limits.validate(); err != nil {
		return BlockTypography{}, err
	}

	ceiling := c.Limits.snap(c.capCeiling(cells))

	// The floor decides between searching and escalating.
	floorOK, floorReq, floorRems, err := c.admissible(cells, blockHeightPx, c.Limits.FloorPx)
	if err != nil {
		return BlockTypography{}, err
	}
	out := BlockTypography{
		BaseFontSizePx:  c.Limits.FloorPx,
		FloorAdmissible: floorOK,
	}
	if !floorOK {
		out.RequiredHeightPx = floorReq
		out.Remediations = floorRems
		c.sizeKPIs(&out, cells, blockHeightPx)
		return out, nil
	}

	// Monotone binary search over the quantized grid: index lo always
	// admissible, hi always not.
	maxK := int(math.Floor((ceiling - c.Limits.FloorPx) / c.Limits.StepPx))
	lo, rems := 0, floorRems
	if maxK > 0 {
		if ok, _, r, err := c.admissible(cells, blockHeightPx, c.Limits.sizeAt(maxK)); err != nil {
			return BlockTypography{}, err
		} else if ok {
			lo, rems = maxK, r
		} else {
			hi := maxK
			for hi-lo > 1 {
				mid := (lo + hi) / 2
				ok, _, r, err := c.admissible(cells, blockHeightPx, c.Limits.sizeAt(mid))
				if err != nil {
					return BlockTypography{}, err
				}
				if ok {
					lo, rems = mid, r
				} else {
					hi = mid
				}
			}
		}
	}

	out.BaseFontSizePx = c.Limits.sizeAt(lo)
	out.Remediations = rems
	c.sizeKPIs(&out, cells, blockHeightPx)
	return out, nil
}

// admissible runs every participating cell through its validator at the
// candidate size. It reports the union of remediation signals and, on
// failure, the tallest required height.
func (c *Calculator) admissible(cells []CellBox, heightPx, sizePx float64) (bool, float64, []fit.Remediation, error) {
	ok := true
	required := 0.0
	var rems []fit.Remediation
	seen := map[fit.Remediation]bool{}

	for _, cb := range cells {
		if !cb.Cell.ParticipatesInFit() {
			continue
		}
		res, err := c.V.Cell(cb.Cell, fit.Constraints{
			WidthPx:     cb.WidthPx,
			HeightPx:    heightPx,
			FloorFontPx: c.Limits.FloorPx,
			FontPx:      sizePx,
		})
		if err != nil {
			return false, 0, nil, err
		}
		if !res.Fits {
			ok = false
			if res.RequiredHeightPx > required {
				required = res.RequiredHeightPx
			}
		}
		for _, r := range res.Remediations {
			if !seen[r] {
				seen[r] = true
				rems = append(rems, r)
			}
		}
	}
	if ok {
		required = 0
	}
	return ok, required, rems, nil
}

// capCeiling lowers the search ceiling by the bar-label cap of every bar
// cell, never below the floor.
func (c *Calculator) capCeiling(cells []CellBox) float64 {
	ceiling := c.Limits.CeilingPx
	for _, cb := range cells {
		if cb.Cell.BodyType != report.BodyBar {
			continue
		}
		if cap := c.BarLabelCap(cb.Cell.Series, cb.WidthPx); cap < ceiling {
			ceiling = cap
		}
	}
	if ceiling < c.Limits.FloorPx {
		ceiling = c.Limits.FloorPx
	}
	return ceiling
}

// BarLabelCap returns the largest font size at which every bar label fits
// its line budget within the per-bar slot. Advances scale linearly with
// size, so one probe measurement per label gives the answer in closed form.
func (c *Calculator) BarLabelCap(series []report.DataPoint, widthPx float64) float64 {
	n := len(series)
	if n == 0 {
		return c.Limits.CeilingPx
	}
	p := c.V.Params
	innerW := widthPx - 2*p.CellPaddingPx
	slot := (innerW - float64(n-1)*p.BarGapPx) / float64(n)
	if slot <= 0 {
		return c.Limits.FloorPx
	}

	const probe = 10.0
	budget := float64(p.BarLabelMaxLines) * slot
	limit := c.Limits.CeilingPx
	for _, pt := range series {
		w := c.V.M.LineWidth(pt.Label, probe)
		if w <= 0 {
			continue
		}
		if s := probe * budget / w; s < limit {
			limit = s
		}
	}
	return limit
}
