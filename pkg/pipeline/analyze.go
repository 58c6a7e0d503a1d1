package pipeline

import (
	"context"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citemap/pkg/citegraph"
	"github.com/matzehuels/citemap/pkg/cluster"
	"github.com/matzehuels/citemap/pkg/components"
	"github.com/matzehuels/citemap/pkg/graph"
	pkgio "github.com/matzehuels/citemap/pkg/io"
	"github.com/matzehuels/citemap/pkg/observability"
)

// Analysis holds the in-memory results of stages 1 and 2.
type Analysis struct {
	Graph     *citegraph.Graph // graph that was labeled, symmetrized if requested
	Labels    components.Labeling
	Counts    components.Counts
	Coverage  []float64
	Clusters  cluster.Result
	Positions []r2.Vec
	Stats     Stats
}

// Analyze labels the components of d's graph, lays them out and places
// every vertex. opts must be valid. All randomness comes from one generator
// seeded with opts.Seed, used for the layout first and placement second.
func Analyze(ctx context.Context, d *pkgio.Dataset, opts Options) (*Analysis, error) {
	hooks := observability.Pipeline()
	a := &Analysis{Graph: d.Graph}
	if opts.Symmetrize {
		a.Graph = d.Graph.Symmetrize()
	}
	a.Stats.Vertices = a.Graph.N()
	a.Stats.Edges = d.Graph.EdgeCount()

	start := time.Now()
	a.Labels = components.Label(a.Graph)
	a.Counts = components.Count(a.Labels)
	a.Coverage = a.Counts.Scale(opts.SortCoverage)
	a.Stats.Components = a.Labels.Count
	a.Stats.LabelTime = time.Since(start)
	hooks.OnLabelComplete(ctx, a.Stats.Vertices, a.Stats.Components, a.Stats.LabelTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	rng := cluster.NewRand(opts.Seed)
	res, err := cluster.LayoutContext(ctx, a.Counts, opts.Bounds(), rng, opts.Layout)
	if err != nil {
		hooks.OnLayoutComplete(ctx, a.Stats.Components, 0, time.Since(start), err)
		return nil, err
	}
	a.Clusters = res
	for _, r := range res.Regions {
		if r.Fallback {
			a.Stats.Fallbacks++
		}
	}
	a.Positions = cluster.PlaceAll(a.Labels, res, rng, cluster.PlaceOptions{AreaUniform: opts.AreaUniform})
	a.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, a.Stats.Components, a.Stats.Fallbacks, a.Stats.LayoutTime, nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a, nil
}

// Export converts an analysis of d to its serialized form. Edges are the
// dataset's original citations, not the symmetrized ones.
func Export(d *pkgio.Dataset, a *Analysis, opts Options) graph.Layout {
	l := graph.Layout{
		Width:    opts.Width,
		Height:   opts.Height,
		Seed:     opts.Seed,
		Summary:  a.Counts.Summary(),
		Counts:   []int(a.Counts),
		Coverage: a.Coverage,
		Regions:  make([]graph.Region, len(a.Clusters.Regions)),
		Nodes:    make([]graph.Node, len(d.Nodes)),
	}
	for i, r := range a.Clusters.Regions {
		l.Regions[i] = graph.Region{
			Component: r.Component,
			X:         r.Center.X,
			Y:         r.Center.Y,
			Radius:    r.Radius,
			Share:     r.Share,
			Attempts:  r.Attempts,
			Fallback:  r.Fallback,
		}
	}
	for v, n := range d.Nodes {
		p := a.Positions[v]
		l.Nodes[v] = graph.Node{
			ID:        n.ID,
			Label:     n.Label,
			Subject:   n.Subject,
			Component: a.Labels.Of[v],
			X:         p.X,
			Y:         p.Y,
		}
	}
	for _, link := range d.Links() {
		l.Edges = append(l.Edges, graph.Edge{From: link.From, To: link.To})
	}
	return l
}
