package resolve

import (
	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/fit"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/layout/typography"
	"github.com/statboard/statboard/pkg/report"
)

// =============================================================================
// Priorities and Policy
// =============================================================================

// Priority identifies the tier of the chain that produced a resolution.
type Priority int

const (
	PriorityIntrinsic         Priority = 1
	PriorityAspectOverride    Priority = 2
	PriorityReadability       Priority = 3
	PriorityStructuralFailure Priority = 4
)

func (p Priority) String() string {
	switch p {
	case PriorityIntrinsic:
		return "intrinsic"
	case PriorityAspectOverride:
		return "aspect_override"
	case PriorityReadability:
		return "readability"
	case PriorityStructuralFailure:
		return "structural_failure"
	default:
		return "unknown"
	}
}

// DefaultMaxSaneHeightPx bounds priority-3 growth when the author set no
// maximum of their own.
const DefaultMaxSaneHeightPx = 4000.0

// Policy bundles every knob the engine resolves under.
type Policy struct {
	// Limits bounds the typography search.
	Limits typography.Limits

	// Fit holds the validators' geometry constants.
	Fit fit.Params

	// BaselineAspect seeds priority 3, height = width x H/W.
	BaselineAspect report.Ratio

	// MaxSaneHeightPx is the absolute growth bound; an author maximum
	// below it tightens the bound further.
	MaxSaneHeightPx float64
}

// DefaultPolicy returns the production policy: 4:1 baseline, 4000px cap.
func DefaultPolicy() Policy {
	return Policy{
		Limits:          typography.DefaultLimits(),
		Fit:             fit.DefaultParams(),
		BaselineAspect:  report.Ratio{W: 4, H: 1},
		MaxSaneHeightPx: DefaultMaxSaneHeightPx,
	}
}

// =============================================================================
// Resolution
// =============================================================================

// Resolution is the engine's verdict for one block at one width.
type Resolution struct {
	// HeightPx is the resolved block height. Zero at priority 4: a
	// structurally failed block has no usable height.
	HeightPx float64 `json:"heightPx"`

	// Priority names the tier that decided.
	Priority Priority `json:"priority"`

	// Reason is a short human-readable account of the decision.
	Reason string `json:"reason"`

	// CanIncrease reports that the engine grew (or may grow) the height
	// beyond the tier's initial choice to admit content.
	CanIncrease bool `json:"canIncrease"`

	// PublishBlocked is set only at priority 4.
	PublishBlocked bool `json:"publishBlocked"`

	// RequiredActions lists the structural changes that would make the
	// content fit. Non-empty exactly when PublishBlocked.
	RequiredActions []fit.Remediation `json:"requiredActions,omitempty"`

	// Typography is the calculator verdict at the resolved height.
	Typography typography.BlockTypography `json:"typography"`
}

// =============================================================================
// Engine
// =============================================================================

// Engine resolves block heights. It is stateless beyond its policy and
// safe for concurrent use across blocks.
type Engine struct {
	calc   *typography.Calculator
	policy Policy
}

// New creates an Engine over the given measurer with the default policy.
func New(m measure.Measurer) *Engine {
	return NewWithPolicy(m, DefaultPolicy())
}

// NewWithPolicy creates an Engine with explicit policy knobs.
func NewWithPolicy(m measure.Measurer, p Policy) *Engine {
	return &Engine{
		calc: &typography.Calculator{
			V:      &fit.Validator{M: m, Params: p.Fit},
			Limits: p.Limits,
		},
		policy: p,
	}
}

// Policy returns the engine's policy knobs.
func (e *Engine) Policy() Policy { return e.policy }

// Boxes allocates the block width across cells by unit weight and pairs
// each cell with its share.
func Boxes(block report.Block, availableWidthPx float64) []typography.CellBox {
	total := float64(block.TotalWidthUnits())
	if total == 0 {
		return nil
	}
	boxes := make([]typography.CellBox, len(block.Cells))
	for i, cell := range block.Cells {
		boxes[i] = typography.CellBox{
			Cell:    cell,
			WidthPx: float64(cell.Width) / total * availableWidthPx,
		}
	}
	return boxes
}

// Resolve runs the priority chain for one block at one available width.
func (e *Engine) Resolve(block report.Block, availableWidthPx float64) (Resolution, error) {
	if availableWidthPx <= 0 {
		return Resolution{}, errors.New(errors.ErrCodeInvalidDimensions,
			"available width must be positive, got %.2f", availableWidthPx)
	}
	if err := block.Validate(); err != nil {
		return Resolution{}, err
	}

	boxes := Boxes(block, availableWidthPx)

	if block.HasIntrinsicMedia() {
		return e.resolveIntrinsic(block, boxes)
	}
	if !block.AspectRatioOverride.IsZero() && block.AspectOverrideAllowed() {
		if res, ok, err := e.resolveOverride(block, boxes, availableWidthPx); err != nil {
			return Resolution{}, err
		} else if ok {
			return res, nil
		}
	}
	return e.resolveReadability(block, boxes, availableWidthPx)
}

// resolveIntrinsic implements priority 1: the tallest setIntrinsic image
// dictates the height. When the remaining content overflows even at the
// floor size, the block grows past the image height rather than clipping
// text, and the image letterboxes.
func (e *Engine) resolveIntrinsic(block report.Block, boxes []typography.CellBox) (Resolution, error) {
	height := 0.0
	for _, b := range boxes {
		if !b.Cell.IsIntrinsic() {
			continue
		}
		if h := b.Cell.Image.AspectRatio.HeightFor(b.WidthPx); h > height {
			height = h
		}
	}
	height = e.atLeastMin(block, height)

	typo, err := e.calc.Calculate(boxes, height)
	if err != nil {
		return Resolution{}, err
	}
	if typo.FloorAdmissible {
		return Resolution{
			HeightPx:   height,
			Priority:   PriorityIntrinsic,
			Reason:     "intrinsic media height",
			Typography: typo,
		}, nil
	}

	grown := typo.RequiredHeightPx
	if grown <= height {
		grown = height
	}
	if grown > e.heightCap(block) {
		return e.structuralFailure(typo)
	}
	typo, err = e.calc.Calculate(boxes, grown)
	if err != nil {
		return Resolution{}, err
	}
	if !typo.FloorAdmissible {
		return e.structuralFailure(typo)
	}
	return Resolution{
		HeightPx:    grown,
		Priority:    PriorityIntrinsic,
		Reason:      "intrinsic media height, grown to fit content",
		CanIncrease: true,
		Typography:  typo,
	}, nil
}

// resolveOverride implements priority 2. A verified override returns; an
// override whose height cannot hold the content at the floor falls
// through to readability enforcement.
func (e *Engine) resolveOverride(block report.Block, boxes []typography.CellBox, widthPx float64) (Resolution, bool, error) {
	height := e.atLeastMin(block, block.AspectRatioOverride.HeightFor(widthPx))

	typo, err := e.calc.Calculate(boxes, height)
	if err != nil {
		return Resolution{}, false, err
	}
	if !typo.FloorAdmissible {
		return Resolution{}, false, nil
	}
	return Resolution{
		HeightPx:   height,
		Priority:   PriorityAspectOverride,
		Reason:     "author aspect ratio override",
		Typography: typo,
	}, true, nil
}

// resolveReadability implements priorities 3 and 4: baseline height,
// grown once to the tallest required height, structural failure when the
// growth exceeds the cap or still does not admit the floor.
func (e *Engine) resolveReadability(block report.Block, boxes []typography.CellBox, widthPx float64) (Resolution, error) {
	height := e.atLeastMin(block, e.policy.BaselineAspect.HeightFor(widthPx))

	typo, err := e.calc.Calculate(boxes, height)
	if err != nil {
		return Resolution{}, err
	}
	if typo.FloorAdmissible {
		return Resolution{
			HeightPx:    height,
			Priority:    PriorityReadability,
			Reason:      "baseline height admits the content",
			CanIncrease: true,
			Typography:  typo,
		}, nil
	}

	grown := typo.RequiredHeightPx
	if grown <= height || grown > e.heightCap(block) {
		return e.structuralFailure(typo)
	}
	typo, err = e.calc.Calculate(boxes, grown)
	if err != nil {
		return Resolution{}, err
	}
	if !typo.FloorAdmissible {
		return e.structuralFailure(typo)
	}
	return Resolution{
		HeightPx:    grown,
		Priority:    PriorityReadability,
		Reason:      "grown to required height at floor font size",
		CanIncrease: true,
		Typography:  typo,
	}, nil
}

// structuralFailure implements priority 4: no usable height, publish
// blocked, actions surfaced. Split is always on the table.
func (e *Engine) structuralFailure(typo typography.BlockTypography) (Resolution, error) {
	actions := typo.Remediations
	hasSplit := false
	for _, a := range actions {
		if a == fit.RemediationSplitBlock {
			hasSplit = true
		}
	}
	if !hasSplit {
		actions = append(actions, fit.RemediationSplitBlock)
	}
	return Resolution{
		Priority:        PriorityStructuralFailure,
		Reason:          "content cannot fit any allowed height",
		PublishBlocked:  true,
		RequiredActions: actions,
		Typography:      typo,
	}, nil
}

// heightCap is the tightest of the author maximum and the sane bound.
func (e *Engine) heightCap(block report.Block) float64 {
	limit := e.policy.MaxSaneHeightPx
	if block.MaxAllowedHeightPx > 0 && block.MaxAllowedHeightPx < limit {
		limit = block.MaxAllowedHeightPx
	}
	return limit
}

// atLeastMin lifts a tier's height to the author minimum, if set.
func (e *Engine) atLeastMin(block report.Block, height float64) float64 {
	if block.MinAllowedHeightPx > height {
		return block.MinAllowedHeightPx
	}
	return height
}
