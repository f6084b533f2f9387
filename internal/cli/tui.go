package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/statboard/statboard/pkg/editor"
	"github.com/statboard/statboard/pkg/report"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ValidationModel - Interactive per-block validation findings
// =============================================================================

// blockVerdict is one block's publish check, resolved ahead of time so the
// view never blocks on the engine.
type blockVerdict struct {
	BlockID  string
	HeightPx float64
	FontPx   float64
	Result   editor.Result
}

// ValidationModel is the bubbletea model for browsing validation findings
// block by block.
type ValidationModel struct {
	ReportID string
	Verdicts []blockVerdict
	Cursor   int
}

// newValidationModel validates every block up front and returns a model over
// the findings.
func newValidationModel(rep report.Report, v *editor.Validator) ValidationModel {
	m := ValidationModel{ReportID: rep.ID}
	for _, block := range rep.Blocks {
		verdict := blockVerdict{BlockID: block.ID, Result: v.ValidateForPublish(block)}
		if res, err := v.Engine.Resolve(block, v.PreviewWidthPx); err == nil && !res.PublishBlocked {
			verdict.HeightPx = res.HeightPx
			verdict.FontPx = res.Typography.BaseFontSizePx
		}
		m.Verdicts = append(m.Verdicts, verdict)
	}
	return m
}

func (m ValidationModel) Init() tea.Cmd {
	return nil
}

func (m ValidationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Verdicts)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m ValidationModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Publish Checks: " + m.ReportID))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, v := range m.Verdicts {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := "ok"
		switch {
		case len(v.Result.Errors) > 0:
			status = "blocked"
		case len(v.Result.Warnings) > 0:
			status = "warnings"
		}

		layout := "—"
		if v.HeightPx > 0 {
			layout = fmt.Sprintf("%.0fpx @ %.2fpx", v.HeightPx, v.FontPx)
		}

		rows = append(rows, []string{cursor, v.BlockID, status, layout})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Block", "Status", "Layout").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(m.Verdicts) {
				return lipgloss.NewStyle()
			}
			v := m.Verdicts[row]

			base := lipgloss.NewStyle()
			if row == m.Cursor {
				base = base.Bold(true)
			}
			switch {
			case len(v.Result.Errors) > 0:
				return base.Foreground(colorRed)
			case len(v.Result.Warnings) > 0:
				return base.Foreground(colorYellow)
			default:
				return base.Foreground(colorGreen)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if len(m.Verdicts) > 0 {
		v := m.Verdicts[m.Cursor]
		b.WriteString(m.renderFindings(v))
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Verdicts))))
	return b.String()
}

// renderFindings shows the selected block's errors, warnings, and
// suggestions below the table.
func (m ValidationModel) renderFindings(v blockVerdict) string {
	var b strings.Builder
	if len(v.Result.Errors) == 0 && len(v.Result.Warnings) == 0 {
		b.WriteString(StyleSuccess.Render("  " + iconSuccess + " ready to publish"))
		b.WriteString("\n\n")
		return b.String()
	}
	for _, issue := range v.Result.Errors {
		b.WriteString(StyleError.Render("  " + iconError + " " + issue.Message))
		b.WriteString("\n")
	}
	for _, issue := range v.Result.Warnings {
		b.WriteString(StyleWarning.Render("  " + iconWarning + " " + issue.Message))
		b.WriteString("\n")
	}
	for _, s := range v.Result.Suggestions {
		b.WriteString(listDimStyle.Render("    " + iconArrow + " " + s))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
