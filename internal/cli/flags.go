package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/pipeline"
)

// analysisFlags holds the flags shared by every command that runs the
// analysis. Values only override the config file when set explicitly.
type analysisFlags struct {
	width       float64
	height      float64
	seed        uint64
	directed    bool
	unsorted    bool
	areaUniform bool
	minRadius   float64
	maxAttempts int
	noCache     bool
	refresh     bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height")
	fs.Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for the layout")
	fs.BoolVar(&f.directed, "directed", false, "label the citation graph without symmetrizing it")
	fs.BoolVar(&f.unsorted, "unsorted", false, "order the coverage curve by component id instead of size")
	fs.BoolVar(&f.areaUniform, "area-uniform", false, "spread papers evenly over their circle")
	fs.Float64Var(&f.minRadius, "min-radius", 0, "smallest circle radius")
	fs.IntVar(&f.maxAttempts, "max-attempts", 0, "candidate positions tried per component")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached layout exists")
}

// apply overlays the explicitly set flags onto opts.
func (f *analysisFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("seed") {
		opts.Seed = f.seed
	}
	if fs.Changed("directed") {
		opts.Symmetrize = !f.directed
	}
	if fs.Changed("unsorted") {
		opts.SortCoverage = !f.unsorted
	}
	if fs.Changed("area-uniform") {
		opts.AreaUniform = f.areaUniform
	}
	if fs.Changed("min-radius") {
		opts.Layout.MinRadius = f.minRadius
	}
	if fs.Changed("max-attempts") {
		opts.Layout.MaxAttempts = f.maxAttempts
	}
	opts.Refresh = f.refresh
}

// renderFlags holds the output flags of commands that write images.
type renderFlags struct {
	formats string
	output  string
	title   string
	noEdges bool
	regions bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output formats: svg,png,dot,json,coverage (default from config, else svg)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: current directory)")
	fs.StringVar(&f.title, "title", "", "chart title")
	fs.BoolVar(&f.noEdges, "no-edges", false, "omit citation edges")
	fs.BoolVar(&f.regions, "regions", false, "outline the circle of each component")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("title") {
		opts.Render.Title = f.title
	}
	if fs.Changed("no-edges") {
		opts.Render.Edges = !f.noEdges
	}
	if fs.Changed("regions") {
		opts.Render.Regions = f.regions
	}
}
