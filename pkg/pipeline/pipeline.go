// Package pipeline runs the label → layout → render pipeline for citemap.
//
// The CLI and the HTTP server both go through a [Runner], so options,
// caching and logging behave the same at every entry point.
//
// # Stages
//
//  1. Label: symmetrize the graph (optional) and label its connected
//     components
//  2. Layout: size a circle per component, pack the circles on the canvas
//     and sample a position for every vertex inside its component's circle
//  3. Render: draw the layout as SVG, PNG, DOT, JSON or a coverage chart
//
// Stages 1 and 2 produce a [graph.Layout], which is cached by content hash
// and options. Rendering always works from a layout, so a layout file can be
// rendered again without the source graph.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatSVG}
//	result, err := runner.Execute(ctx, dataset, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citemap/pkg/cluster"
	"github.com/matzehuels/citemap/pkg/errors"
	"github.com/matzehuels/citemap/pkg/graph"
	"github.com/matzehuels/citemap/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	DefaultWidth  = 1000.0
	DefaultHeight = 1000.0
	DefaultSeed   = 42
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatDOT      = "dot"
	FormatJSON     = "json"
	FormatCoverage = "coverage"
)

// ValidFormats lists the formats Render accepts.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatDOT:      true,
	FormatJSON:     true,
	FormatCoverage: true,
}

// FormatExt maps each format to the file extension it is written with.
var FormatExt = map[string]string{
	FormatSVG:      ".svg",
	FormatPNG:      ".png",
	FormatDOT:      ".dot",
	FormatJSON:     ".json",
	FormatCoverage: ".coverage.svg",
}

// =============================================================================
// Options and Results
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Canvas size; the canvas is centered on the origin.
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	// Seed drives every random choice. Equal seeds give equal layouts.
	Seed uint64 `toml:"seed" json:"seed"`
	// Symmetrize adds the reverse of every edge before labeling, making
	// components the weakly connected components of the citation graph.
	Symmetrize bool `toml:"symmetrize" json:"symmetrize"`
	// SortCoverage orders the coverage curve largest component first.
	SortCoverage bool `toml:"sort_coverage" json:"sort_coverage"`
	// AreaUniform spreads vertices evenly over their circle instead of
	// crowding them toward the center.
	AreaUniform bool `toml:"area_uniform" json:"area_uniform"`

	Layout cluster.Options `toml:"layout" json:"layout"`
	Render render.Options  `toml:"render" json:"-"`

	Formats []string `toml:"formats" json:"-"`
	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `toml:"-" json:"-"`
}

// DefaultOptions returns the default pipeline options.
func DefaultOptions() Options {
	return Options{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Seed:         DefaultSeed,
		Symmetrize:   true,
		SortCoverage: true,
		Layout:       cluster.DefaultOptions(),
		Render:       render.DefaultOptions(),
		Formats:      []string{FormatSVG},
	}
}

// Bounds returns the canvas box, centered on the origin.
func (o Options) Bounds() r2.Box {
	hw, hh := o.Width/2, o.Height/2
	return r2.Box{Min: r2.Vec{X: -hw, Y: -hh}, Max: r2.Vec{X: hw, Y: hh}}
}

// Validate checks the canvas, layout options and formats.
func (o Options) Validate() error {
	if !(o.Width > 0) || !(o.Height > 0) || math.IsInf(o.Width, 0) || math.IsInf(o.Height, 0) {
		return errors.New(errors.ErrCodeInvalidOptions, "canvas must have finite positive size: %gx%g", o.Width, o.Height)
	}
	if err := o.Layout.Validate(o.Bounds()); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the serialized analysis.
	Layout graph.Layout
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte
	Stats     Stats
	// CacheHit is set when the layout came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int
	Edges      int
	Components int
	Fallbacks  int
	LabelTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidOptions,
			"invalid format: %q (must be one of: %v)", format, FormatNames())
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the valid formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}
