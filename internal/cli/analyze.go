package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/components"
	"github.com/matzehuels/citemap/pkg/graph"
)

// coverageMilestones are the vertex shares reported by "analyze".
var coverageMilestones = []float64{0.5, 0.9, 0.99}

// analyzeCommand creates the analyze command for summarizing a network's components.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		input inputFlags
		flags analysisFlags
		top   int
	)

	cmd := &cobra.Command{
		Use:   "analyze [dataset.json]",
		Short: "Summarize the connected components of a citation network",
		Long: `Analyze labels the connected components of a citation network and reports
their sizes and how quickly the largest components cover the network.

Input is either a nodes/edges CSV pair or a dataset JSON file.`,
		Example: `  citemap analyze --nodes nodes.csv --edges edges.csv
  citemap analyze cora.json --top 20`,
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

			prog := newProgress(c.Logger)
			res, err := runner.ComputeLayout(cmd.Context(), d, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Analyzed %s", name))

			printSummary(res.Layout, top)
			printStats(res.Stats.Vertices, res.Stats.Edges, res.Stats.Components, res.CacheHit)
			if res.Stats.Fallbacks > 0 {
				printWarning("%d components overlap others (no free spot after %d attempts)",
					res.Stats.Fallbacks, opts.Layout.MaxAttempts)
			}
			printNewline()
			printNextStep("Draw it", "citemap render "+renderHint(input, args))
			return nil
		},
	}

	input.register(cmd)
	flags.register(cmd)
	cmd.Flags().IntVar(&top, "top", 10, "number of components listed")

	return cmd
}

// printSummary prints the headline figures, the largest components and the
// coverage milestones of l.
func printSummary(l graph.Layout, top int) {
	s := l.Summary
	fmt.Fprintln(out, StyleTitle.Render("Components"))
	printKeyValue("papers", strconv.Itoa(s.Vertices))
	printKeyValue("components", strconv.Itoa(s.Components))
	printKeyValue("singletons", strconv.Itoa(s.Singletons))
	printKeyValue("largest", fmt.Sprintf("%d (%.1f%%)", s.LargestSize, 100*s.LargestShare))
	printNewline()

	if rows := componentRows(l, top); len(rows) > 0 {
		fmt.Fprintln(out, componentTable(rows))
		printNewline()
	}

	for _, m := range coverageMilestones {
		n := componentsFor(l.Coverage, m)
		if n < 0 {
			continue
		}
		printDetail("%2.0f%% of papers lie in %d components", 100*m, n)
	}
}

// componentRow is one line of the component table.
type componentRow struct {
	rank      int
	component int
	size      int
	share     float64
	radius    float64
	fallback  bool
}

// componentRows returns the n largest components of l, largest first.
// n <= 0 returns all of them.
func componentRows(l graph.Layout, n int) []componentRow {
	rows := make([]componentRow, 0, len(l.Regions))
	for _, id := range components.Counts(l.Counts).Ranked() {
		if n > 0 && len(rows) == n {
			break
		}
		r := l.Regions[id]
		rows = append(rows, componentRow{
			rank:      len(rows) + 1,
			component: id,
			size:      l.Counts[id],
			share:     r.Share,
			radius:    r.Radius,
			fallback:  r.Fallback,
		})
	}
	return rows
}

func componentTable(rows []componentRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "COMPONENT", "PAPERS", "SHARE", "RADIUS", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		flag := ""
		if r.fallback {
			flag = StyleWarning.Render("overlaps")
		}
		t.Row(
			strconv.Itoa(r.rank),
			strconv.Itoa(r.component),
			strconv.Itoa(r.size),
			fmt.Sprintf("%.2f%%", 100*r.share),
			fmt.Sprintf("%.1f", r.radius),
			flag,
		)
	}
	return t.Render()
}

// componentsFor returns how many components of the coverage curve are needed
// to hold at least the given share of vertices, or -1 for an empty curve.
func componentsFor(curve []float64, share float64) int {
	for i, v := range curve {
		if v >= share {
			return i
		}
	}
	return -1
}

// renderHint rebuilds the input arguments for a suggested follow-up command.
func renderHint(input inputFlags, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "--nodes " + input.nodes + " --edges " + input.edges
}
