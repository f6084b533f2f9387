package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/report"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		width     float64
		published bool
		refresh   bool
		noCache   bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "resolve <report.json>",
		Short: "Compute block heights and typography for a report",
		Long: `Resolve a report's layout at a viewport width: every block gets a height
from the priority chain (intrinsic media, aspect override, readability,
structural failure) and a base font size from the typography search.`,
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

			spinner := newSpinner(fmt.Sprintf("Resolving %s", rep.ID))
			spinner.Start()
			result, err := runner.Execute(cmd.Context(), rep, pipeline.Options{
				WidthPx:   width,
				Published: published,
				Refresh:   refresh,
				Formats:   []string{pipeline.FormatJSON},
			})
			if err != nil {
				spinner.StopWithError(fmt.Sprintf("Resolution failed: %v", err))
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Resolved %s at %.0fpx", rep.ID, result.Layout.WidthPx))

			printStats(len(result.Layout.Blocks), result.Layout.TotalHeightPx, result.CacheInfo.ResolveHit)
			printNewline()
			for _, bl := range result.Layout.Blocks {
				res := bl.Resolution
				status := fmt.Sprintf("%.0fpx · %.2fpx font · %s", bl.Style.HeightPx, bl.Style.BaseFontSizePx, res.Priority)
				if res.PublishBlocked {
					status = "publish blocked"
				}
				printKeyValue(bl.BlockID, status)
				if res.PublishBlocked {
					for _, action := range res.RequiredActions {
						printDetail("%s", action.Describe())
					}
				}
			}

			if output != "" {
				if err := os.WriteFile(output, result.Artifacts[pipeline.FormatJSON], 0644); err != nil {
					return err
				}
				printFile(output)
			} else {
				printNewline()
				printNextStep("Render a preview", fmt.Sprintf("statboard render %s", args[0]))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "viewport width in pixels (default 1200)")
	cmd.Flags().BoolVar(&published, "published", false, "treat structural failures as degraded placeholders")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the layout cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout JSON to a file")
	return cmd
}
