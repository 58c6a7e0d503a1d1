// Package pkg provides the core libraries for citemap, a connectivity map of
// citation networks.
//
// # Overview
//
// citemap labels the connected components of a citation network, measures how
// quickly its largest components cover the network, and draws every component
// as a cluster of papers inside its own circle. The pkg directory is organized
// into three areas:
//
//  1. Domain logic ([citegraph], [components], [cluster])
//  2. Data plumbing ([io], [graph], [cache])
//  3. Orchestration and output ([pipeline], [render])
//
// # Architecture
//
// The typical data flow:
//
//	nodes.csv + edges.csv, or dataset JSON
//	         ↓
//	    [io] package (dense vertex ids + paper metadata)
//	         ↓
//	    [components] package (labels, counts, coverage curve)
//	         ↓
//	    [cluster] package (one circle per component, one point per paper)
//	         ↓
//	    [graph] package (layout JSON)
//	         ↓
//	    [render] package (SVG, PNG, DOT, coverage chart)
//
// # Quick Start
//
//	d, _ := io.ImportCSV("nodes.csv", "edges.csv")
//	runner := pipeline.NewRunner(nil, nil)
//	res, _ := runner.Execute(ctx, d, pipeline.DefaultOptions())
//	os.WriteFile("map.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Main Packages
//
// [citegraph] - Compact adjacency-list graph over dense integer vertices.
//
// [components] - Breadth-first component labeling, per-component counts and
// the cumulative coverage curve.
//
// [cluster] - Circle packing of components on a spatial grid and random
// placement of vertices inside their component's circle. All randomness comes
// from one seeded generator.
//
// [io] - CSV and JSON ingestion, and per-subject partitioning.
//
// [graph] - The layout JSON format shared by the CLI and the HTTP API.
//
// [cache] - Layout caches: file-backed for the CLI, in-memory for the server.
//
// [pipeline] - The label → layout → render pipeline used by CLI and API.
//
// [render] - Hand-written SVG, the coverage chart and Graphviz output.
//
// [observability] - Hooks for pipeline and HTTP metrics.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip Graphviz rendering
//	go test -run Example ./pkg/...       # Examples only
//
// [citegraph]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/citegraph
// [components]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/components
// [cluster]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/cluster
// [io]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/citemap/pkg/observability
package pkg
