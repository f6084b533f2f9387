package editor

import (
	"strings"
	"testing"

	"github.com/statboard/statboard/pkg/errors"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/report"
)

var square = measure.Estimator{CharWidthEm: 0.5, LineHeightEm: 1.0}

func newValidator() *Validator {
	p := resolve.DefaultPolicy()
	p.Fit.CellPaddingPx = 0
	return New(resolve.NewWithPolicy(square, p))
}

func TestValidateForPublish(t *testing.T) {
	v := newValidator()

	bigTable := &report.TableData{Header: []string{"name", "count"}}
	for i := 0; i < 500; i++ {
		bigTable.Rows = append(bigTable.Rows, []string{"event", "1"})
	}

	tests := []struct {
		name            string
		block           report.Block
		wantValid       bool
		wantErrCode     errors.Code
		wantWarnings    int
		wantSuggestions bool
	}{
		{
			name: "clean block",
			block: report.Block{ID: "b1", Cells: []report.Cell{
				{ChartID: "t", Width: 1, BodyType: report.BodyText, Text: "Short note"},
			}},
			wantValid: true,
		},
		{
			name:        "malformed block",
			block:       report.Block{ID: "b2"},
			wantValid:   false,
			wantErrCode: errors.ErrCodeInvalidBlock,
		},
		{
			name: "structural failure blocks publish",
			block: report.Block{ID: "b3", MaxAllowedHeightPx: 600, Cells: []report.Cell{
				{ChartID: "tbl", Width: 2, BodyType: report.BodyTable, Table: bigTable},
			}},
			wantValid:       false,
			wantErrCode:     errors.ErrCodeStructuralFailure,
			wantSuggestions: true,
		},
		{
			name: "illegal aspect override",
			block: report.Block{
				ID:                  "b4",
				AspectRatioOverride: report.MustRatio("1:1"),
				Cells: []report.Cell{
					{ChartID: "k", Width: 1, BodyType: report.BodyKPI, KPI: &report.KPIData{Value: "9"}},
				},
			},
			wantValid:   false,
			wantErrCode: errors.ErrCodeInvalidAspectRatio,
		},
		{
			name: "conflicting intrinsic ratios",
			block: report.Block{ID: "b5", Cells: []report.Cell{
				{ChartID: "wide", Width: 1, BodyType: report.BodyImage,
					Image: &report.ImageData{AspectRatio: report.MustRatio("21:9"), Mode: report.ImageModeIntrinsic}},
				{ChartID: "tall", Width: 1, BodyType: report.BodyImage,
					Image: &report.ImageData{AspectRatio: report.MustRatio("2:3"), Mode: report.ImageModeIntrinsic}},
			}},
			wantValid:   false,
			wantErrCode: errors.ErrCodeInvalidConfig,
		},
		{
			name: "height over author maximum warns only",
			block: report.Block{ID: "b6", MinAllowedHeightPx: 500, MaxAllowedHeightPx: 400,
				Cells: []report.Cell{
					{ChartID: "t", Width: 1, BodyType: report.BodyText, Text: "Short note"},
				}},
			wantValid:   false, // min > max is a structural block error first
			wantErrCode: errors.ErrCodeInvalidBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateForPublish(tt.block)
			if got.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (%+v)", got.Valid, tt.wantValid, got)
			}
			if tt.wantErrCode != "" {
				found := false
				for _, is := range got.Errors {
					if is.Code == tt.wantErrCode {
						found = true
					}
				}
				if !found {
					t.Errorf("Errors = %+v, want code %v present", got.Errors, tt.wantErrCode)
				}
			}
			if tt.wantSuggestions && len(got.Suggestions) == 0 {
				t.Error("expected remediation suggestions")
			}
			if len(got.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %+v, want %d", got.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestHeightOverMaximumWarns(t *testing.T) {
	v := newValidator()

	// An intrinsic 1:1 image at the 1200px preview resolves to 1200px,
	// far over the author's 500px maximum. That is advice, not a block.
	block := report.Block{ID: "b7", MaxAllowedHeightPx: 500, Cells: []report.Cell{
		{ChartID: "img", Width: 1, BodyType: report.BodyImage,
			Image: &report.ImageData{AspectRatio: report.MustRatio("1:1"), Mode: report.ImageModeIntrinsic}},
	}}

	got := v.ValidateForPublish(block)
	if !got.Valid {
		t.Fatalf("expected valid with warning, got %+v", got)
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("Warnings = %+v, want exactly one", got.Warnings)
	}
	if !strings.Contains(got.Warnings[0].Message, "split") {
		t.Errorf("warning should recommend splitting: %q", got.Warnings[0].Message)
	}
}

func TestSuggestionsSurfaceEngineActions(t *testing.T) {
	v := newValidator()

	bigTable := &report.TableData{Header: []string{"name", "count"}}
	for i := 0; i < 500; i++ {
		bigTable.Rows = append(bigTable.Rows, []string{"event", "1"})
	}
	block := report.Block{ID: "b8", MaxAllowedHeightPx: 600, Cells: []report.Cell{
		{ChartID: "tbl", Width: 2, BodyType: report.BodyTable, Table: bigTable},
	}}

	got := v.ValidateForPublish(block)
	wantSplit, wantRows := false, false
	for _, s := range got.Suggestions {
		if strings.Contains(s, "Split this block") {
			wantSplit = true
		}
		if strings.Contains(s, "table rows") {
			wantRows = true
		}
	}
	if !wantSplit || !wantRows {
		t.Errorf("Suggestions = %v, want split and row-reduction advice", got.Suggestions)
	}
}

func TestValidateReport(t *testing.T) {
	v := newValidator()

	got := v.ValidateReport(report.Report{})
	if got.Valid {
		t.Error("empty report should not validate")
	}

	rep := report.Report{ID: "r1", Blocks: []report.Block{
		{ID: "ok", Cells: []report.Cell{
			{ChartID: "t", Width: 1, BodyType: report.BodyText, Text: "fine"},
		}},
		{ID: "bad"},
	}}
	got = v.ValidateReport(rep)
	if got.Valid {
		t.Error("report with a malformed block should not validate")
	}
	if len(got.Errors) != 1 {
		t.Errorf("Errors = %+v, want exactly the malformed block", got.Errors)
	}
}
