package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/render/structure"
	"github.com/statboard/statboard/pkg/report"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		width   float64
		svg     bool
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <report.json>",
		Short: "Diagram a report's structure",
		Long: `Emit a Graphviz diagram of the report: the report node, its blocks
annotated with resolved height and font size, and each block's cells.
Prints DOT by default; --svg renders through Graphviz.`,
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
			layout, err := runner.Resolve(cmd.Context(), rep, pipeline.Options{WidthPx: width})
			if err != nil {
				return err
			}

			dot := structure.ToDOT(rep, layout, structure.Options{Detailed: true})

			var out []byte
			if svg {
				if out, err = structure.RenderSVG(dot); err != nil {
					return err
				}
			} else {
				out = []byte(dot)
			}

			if output != "" {
				if err := os.WriteFile(output, out, 0644); err != nil {
					return err
				}
				printFile(output)
				return nil
			}
			fmt.Print(string(out))
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "viewport width in pixels (default 1200)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render the diagram to SVG via Graphviz")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the diagram to a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	return cmd
}
