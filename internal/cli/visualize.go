package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/graph"
	"github.com/matzehuels/citemap/pkg/pipeline"
)

// visualizeCommand creates the visualize command, which renders a layout
// JSON file written by "citemap layout".
func (c *CLI) visualizeCommand() *cobra.Command {
	var render renderFlags

	cmd := &cobra.Command{
		Use:   "visualize <file.layout.json>",
		Short: "Render a saved layout",
		Long: `Visualize draws a layout JSON file without recomputing it, so the same layout
can be rendered with different styles or formats.`,
		Example: `  citemap visualize cora.layout.json -f svg,png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := graph.ReadLayoutFile(args[0])
			if err != nil {
				return err
			}
			opts := c.Config.Pipeline
			render.apply(cmd, &opts)

			runner := pipeline.NewRunner(nil, c.Logger)
			artifacts, err := runner.Render(cmd.Context(), l, opts)
			if err != nil {
				return err
			}

			name := strings.TrimSuffix(baseName(args[0]), ".layout")
			paths, err := writeArtifacts(artifacts, render.output, name)
			if err != nil {
				return err
			}
			printSuccess("Rendered %d outputs", len(paths))
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	render.register(cmd)

	return cmd
}
