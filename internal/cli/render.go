package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/report"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		width     float64
		formats   string
		outDir    string
		published bool
		outlines  bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "render <report.json>",
		Short: "Render a report preview",
		Long:  `Render a report at its resolved layout. Formats: svg, png, pdf, json, dot.`,
		Args:  cobra.ExactArgs(1),
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

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), rep, pipeline.Options{
				WidthPx:      width,
				Published:    published,
				CellOutlines: outlines,
				Formats:      parseFormats(formats),
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d blocks", len(result.Layout.Blocks)))

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			printSuccess("Rendered %s", rep.ID)
			for format, data := range result.Artifacts {
				path := filepath.Join(outDir, fmt.Sprintf("%s.%s", rep.ID, format))
				if err := os.WriteFile(path, data, 0644); err != nil {
					return err
				}
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "viewport width in pixels (default 1200)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated output formats")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&published, "published", false, "treat structural failures as degraded placeholders")
	cmd.Flags().BoolVar(&outlines, "cell-outlines", false, "draw cell boundaries in SVG output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	return cmd
}
