package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/pipeline"
)

// renderCommand creates the render command: analysis and drawing in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		input  inputFlags
		flags  analysisFlags
		render renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Draw the component map of a citation network",
		Long: `Render runs the full pipeline: it labels the components, computes the layout
and writes the requested outputs.

Formats:
  svg       component map, one color per component
  png       component map rasterized by Graphviz
  dot       Graphviz source with pinned positions
  json      layout JSON
  coverage  coverage curve as SVG`,
		Example: `  citemap render --nodes nodes.csv --edges edges.csv
  citemap render cora.json -f svg,coverage -o out/`,
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

			spinner := newSpinnerWithContext(cmd.Context(), "Laying out "+name+"...")
			spinner.Start()
			res, err := runner.ComputeLayout(cmd.Context(), d, opts)
			if err != nil {
				spinner.StopWithError("Layout failed")
				return err
			}
			spinner.SetMessage("Rendering " + strings.Join(opts.Formats, ", ") + "...")
			artifacts, err := runner.Render(cmd.Context(), res.Layout, opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.StopWithSuccess("Rendered " + name)

			paths, err := writeArtifacts(artifacts, render.output, name)
			if err != nil {
				return err
			}
			printStats(res.Stats.Vertices, res.Stats.Edges, res.Stats.Components, res.CacheHit)
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	input.register(cmd)
	flags.register(cmd)
	render.register(cmd)

	return cmd
}

// writeArtifacts writes each artifact to dir as <name><ext> and returns the
// paths in format order.
func writeArtifacts(artifacts map[string][]byte, dir, name string) ([]string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, name+pipeline.FormatExt[f])
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", f, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
