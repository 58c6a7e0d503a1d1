package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/graph"
)

// layoutCommand creates the layout command, which writes the analysis as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		input  inputFlags
		flags  analysisFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset.json]",
		Short: "Compute the component layout and write it as JSON",
		Long: `Layout labels the components, packs one circle per component onto the canvas
and places every paper inside its component's circle. The result is written as
a layout JSON file that "citemap visualize" and "citemap browse" read.`,
		Example: `  citemap layout --nodes nodes.csv --edges edges.csv -o cora.layout.json
  citemap layout cora.json --seed 7`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, name, err := input.load(args)
			if err != nil {
				return err
			}
			opts := c.Config.Pipeline
			flags.apply(cmd, &opts)

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			res, err := runner.ComputeLayout(cmd.Context(), d, opts)
			if err != nil {
				return err
			}

			if output == "" {
				output = name + ".layout.json"
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			if err := graph.WriteLayoutFile(res.Layout, output); err != nil {
				return err
			}

			printSuccess("Layout computed")
			printStats(res.Stats.Vertices, res.Stats.Edges, res.Stats.Components, res.CacheHit)
			printFile(output)
			printNewline()
			printNextStep("Render it", "citemap visualize "+output)
			return nil
		},
	}

	input.register(cmd)
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}
