// Package editor gates publishing. It runs the same height resolution the
// renderer uses against a draft and translates engine signals into
// author-facing errors, warnings, and suggestions. It never mutates the
// draft; it is purely advisory.
package editor

import (
	"fmt"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/report"
)

// DefaultPreviewWidthPx is the canonical width drafts are validated at.
const DefaultPreviewWidthPx = 1200.0

// MaxIntrinsicRatioSpread is how far apart two intrinsic image ratios in
// one block may be before the configuration is flagged: beyond 3x, the
// tallest-wins rule letterboxes the flatter image into a sliver.
const MaxIntrinsicRatioSpread = 3.0

// Issue is one author-facing finding.
type Issue struct {
	Code    errors.Code `json:"code"`
	BlockID string      `json:"blockId,omitempty"`
	Message string      `json:"message"`
}

// Result is the publish verdict for a draft.
type Result struct {
	Valid       bool     `json:"valid"`
	Errors      []Issue  `json:"errors,omitempty"`
	Warnings    []Issue  `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (r *Result) addError(code errors.Code, blockID, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Code: code, BlockID: blockID, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(code errors.Code, blockID, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Code: code, BlockID: blockID, Message: fmt.Sprintf(format, args...)})
}

// Validator checks drafts against the resolution engine.
type Validator struct {
	Engine         *resolve.Engine
	PreviewWidthPx float64
}

// New creates a Validator at the default preview width.
func New(engine *resolve.Engine) *Validator {
	return &Validator{Engine: engine, PreviewWidthPx: DefaultPreviewWidthPx}
}

// ValidateForPublish checks one block draft. Structural failures and
// invalid configurations block publish; a resolved height over the
// author's own maximum only warns.
func (v *Validator) ValidateForPublish(block report.Block) Result {
	res := Result{}

	if err := block.Validate(); err != nil {
		res.addError(errors.GetCode(err), block.ID, "%s", errors.UserMessage(err))
		res.Valid = false
		return res
	}

	v.checkConfiguration(block, &res)

	resolution, err := v.Engine.Resolve(block, v.previewWidth())
	if err != nil {
		res.addError(errors.GetCode(err), block.ID, "%s", errors.UserMessage(err))
	} else {
		v.checkResolution(block, resolution, &res)
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// ValidateReport checks a whole draft report, block by block.
func (v *Validator) ValidateReport(rep report.Report) Result {
	out := Result{Valid: true}
	if rep.ID == "" {
		out.addError(errors.ErrCodeInvalidReport, "", "report is missing id")
	}
	if len(rep.Blocks) == 0 {
		out.addError(errors.ErrCodeInvalidReport, "", "report has no blocks")
	}
	for _, block := range rep.Blocks {
		br := v.ValidateForPublish(block)
		out.Errors = append(out.Errors, br.Errors...)
		out.Warnings = append(out.Warnings, br.Warnings...)
		out.Suggestions = append(out.Suggestions, br.Suggestions...)
	}
	out.Valid = len(out.Errors) == 0
	return out
}

// checkConfiguration flags author errors the engine resolves around
// deterministically but should not stay silent about.
func (v *Validator) checkConfiguration(block report.Block, res *Result) {
	if !block.AspectRatioOverride.IsZero() && !block.AspectOverrideAllowed() {
		res.addError(errors.ErrCodeInvalidAspectRatio, block.ID,
			"aspect ratio override is only legal when every cell is text or table; it will be ignored")
	}

	// Conflicting intrinsic ratios: the tallest image wins, so a wide
	// spread squeezes the flatter images.
	minV, maxV := 0.0, 0.0
	for _, cell := range block.Cells {
		if !cell.IsIntrinsic() {
			continue
		}
		val := cell.Image.AspectRatio.Value()
		if minV == 0 || val < minV {
			minV = val
		}
		if val > maxV {
			maxV = val
		}
	}
	if minV > 0 && maxV/minV > MaxIntrinsicRatioSpread {
		res.addError(errors.ErrCodeInvalidConfig, block.ID,
			"intrinsic image ratios conflict (more than %.0fx apart); the tallest wins and the others letterbox",
			MaxIntrinsicRatioSpread)
	}
}

// checkResolution maps engine verdicts to author feedback.
func (v *Validator) checkResolution(block report.Block, resolution resolve.Resolution, res *Result) {
	if resolution.PublishBlocked {
		res.addError(errors.ErrCodeStructuralFailure, block.ID,
			"content cannot fit any allowed height at the minimum font size")
		for _, action := range resolution.RequiredActions {
			res.Suggestions = append(res.Suggestions, action.Describe())
		}
		return
	}

	if block.MaxAllowedHeightPx > 0 && resolution.HeightPx > block.MaxAllowedHeightPx {
		res.addWarning(errors.ErrCodeContentOverflow, block.ID,
			"resolved height %.0fpx exceeds the block's maximum of %.0fpx; relax the maximum or split the block",
			resolution.HeightPx, block.MaxAllowedHeightPx)
	}
}

func (v *Validator) previewWidth() float64 {
	if v.PreviewWidthPx > 0 {
		return v.PreviewWidthPx
	}
	return DefaultPreviewWidthPx
}
