// Package components partitions a [citegraph.Graph] into connected
// components and summarizes how vertices concentrate in them.
//
// # Labeling
//
// [Label] walks vertices in id order and starts a breadth-first traversal at
// every vertex not yet labeled. The traversal follows out-edges only, so the
// result equals weak connectivity only for symmetric graphs; see
// [citegraph.Graph.Symmetrize]. Component ids are dense and 0-indexed.
//
//	l := components.Label(g.Symmetrize())
//	counts := components.Count(l)
//	curve := counts.Scale(true) // [0, 0.6, 1] for sizes {3, 2}
//
// # Coverage Curve
//
// [Counts.Scale] returns the cumulative fraction of all vertices covered by
// the first i components, in size order when sorted. The curve has one entry
// more than there are components and is empty for an empty graph.
//
// [citegraph.Graph]: github.com/matzehuels/citemap/pkg/citegraph.Graph
// [citegraph.Graph.Symmetrize]: github.com/matzehuels/citemap/pkg/citegraph.Graph.Symmetrize
package components
