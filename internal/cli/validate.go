package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/statboard/statboard/pkg/editor"
	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/report"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		width       float64
		interactive bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <report.json>",
		Short: "Run publish validation against a report",
		Long: `Validate a report the way the editor's publish gate does: structural
failures and invalid configurations are errors, a resolved height over an
author maximum is a warning, and engine remediations surface as suggestions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			rep, err := report.ReadFile(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			rep, err = runner.Hydrate(cmd.Context(), rep, pipeline.Options{})
			if err != nil {
				return err
			}

			validator := editor.New(runner.Engine)
			if width > 0 {
				validator.PreviewWidthPx = width
			}

			if interactive {
				model := newValidationModel(rep, validator)
				_, err := tea.NewProgram(model).Run()
				return err
			}

			result := validator.ValidateReport(rep)
			printReportResult(rep.ID, result)
			if !result.Valid {
				return fmt.Errorf("report %s failed validation", rep.ID)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "preview width in pixels (default 1200)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse findings per block")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	return cmd
}

// printReportResult prints a validation result with one line per finding.
func printReportResult(reportID string, result editor.Result) {
	if result.Valid && len(result.Warnings) == 0 {
		printSuccess("Report %s is ready to publish", reportID)
		return
	}

	if result.Valid {
		printSuccess("Report %s can publish, with warnings", reportID)
	} else {
		printError("Report %s cannot publish", reportID)
	}

	for _, issue := range result.Errors {
		printError("%s: %s", issue.BlockID, issue.Message)
	}
	for _, issue := range result.Warnings {
		printWarning("%s: %s", issue.BlockID, issue.Message)
	}
	if len(result.Suggestions) > 0 {
		printNewline()
		printInfo("Suggestions")
		for _, s := range result.Suggestions {
			printDetail("%s", s)
		}
	}
}
