package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/citemap/pkg/graph"
	"github.com/matzehuels/citemap/pkg/observability"
	"github.com/matzehuels/citemap/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l graph.Layout, formats []string, opts render.Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		data, err := renderFormat(ctx, l, format, opts)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l graph.Layout, format string, opts render.Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.ConnectivitySVG(l, opts), nil
	case FormatPNG:
		return render.RenderDOT(ctx, render.ToDOT(l, opts), graphviz.PNG)
	case FormatDOT:
		return []byte(render.ToDOT(l, opts)), nil
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatCoverage:
		return render.CoverageSVG(l.Coverage, render.CoverageTitle), nil
	default:
		return nil, ValidateFormat(format)
	}
}
