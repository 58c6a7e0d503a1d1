package cli

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/pipeline"
)

// unsafeName matches runs of characters not allowed in output file names.
var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// subjectsCommand creates the subjects command, which reports components per subject.
func (c *CLI) subjectsCommand() *cobra.Command {
	var (
		input  inputFlags
		flags  analysisFlags
		render renderFlags
	)

	cmd := &cobra.Command{
		Use:   "subjects [dataset.json]",
		Short: "Report connectivity separately for each subject",
		Long: `Subjects splits the network by paper subject, keeping only citations between
papers of the same subject, and analyzes each part on its own.

With --format, each subject's map is also written to the output directory.`,
		Example: `  citemap subjects --nodes nodes.csv --edges edges.csv
  citemap subjects cora.json -f svg -o subjects/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, name, err := input.load(args)
			if err != nil {
				return err
			}
			opts := c.Config.Pipeline
			flags.apply(cmd, &opts)
			render.apply(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			results, err := runner.AnalyzeSubjects(cmd.Context(), d, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, subjectTable(results))

			if !cmd.Flags().Changed("format") {
				return nil
			}
			for _, r := range results {
				artifacts, err := runner.Render(cmd.Context(), r.Layout, opts)
				if err != nil {
					return fmt.Errorf("subject %q: %w", r.Subject, err)
				}
				paths, err := writeArtifacts(artifacts, render.output, subjectFileName(name, r.Subject))
				if err != nil {
					return err
				}
				for _, p := range paths {
					printFile(p)
				}
			}
			return nil
		},
	}

	input.register(cmd)
	flags.register(cmd)
	render.register(cmd)

	return cmd
}

func subjectTable(results []pipeline.SubjectResult) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("SUBJECT", "PAPERS", "CITATIONS", "COMPONENTS", "SINGLETONS", "LARGEST").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range results {
		s := r.Layout.Summary
		subject := r.Subject
		if subject == "" {
			subject = StyleDim.Render("(none)")
		}
		t.Row(
			subject,
			strconv.Itoa(s.Vertices),
			strconv.Itoa(r.Stats.Edges),
			strconv.Itoa(s.Components),
			strconv.Itoa(s.Singletons),
			fmt.Sprintf("%d (%.1f%%)", s.LargestSize, 100*s.LargestShare),
		)
	}
	return t.Render()
}

// subjectFileName builds "<base>-<subject>" with unsafe characters replaced.
func subjectFileName(base, subject string) string {
	if subject == "" {
		subject = "none"
	}
	return base + "-" + unsafeName.ReplaceAllString(subject, "_")
}
