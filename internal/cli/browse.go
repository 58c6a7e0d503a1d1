package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/graph"
)

// browseCommand creates the browse command, an interactive component list.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		input inputFlags
		flags analysisFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [dataset.json | file.layout.json]",
		Short: "Browse components interactively",
		Long: `Browse opens an interactive list of the components, largest first. Select a
component to list its papers.

The argument may be a dataset or a layout JSON file written by "citemap layout".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				l      graph.Layout
				loaded bool
			)
			if len(args) == 1 && input.nodes == "" {
				if saved, err := graph.ReadLayoutFile(args[0]); err == nil {
					l, loaded = saved, true
				}
			}
			if !loaded {
				d, _, err := input.load(args)
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
				l = res.Layout
			}

			p := tea.NewProgram(NewComponentBrowser(l), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}

	input.register(cmd)
	flags.register(cmd)

	return cmd
}
