// Package citegraph provides the dense-indexed directed graph that the rest
// of citemap analyzes.
//
// # Overview
//
// Vertices are the integers 0..n-1. Each vertex owns an ordered list of
// out-neighbors; duplicate edges and self-loops are kept as given. A [Graph]
// is immutable once built, so it can be shared freely between readers.
//
// Construct a graph from an edge list with [New], which rejects endpoints
// outside [0, n) with an INVALID_GRAPH error:
//
//	g, err := citegraph.New(5, []citegraph.Edge{{0, 1}, {1, 0}, {3, 4}})
//
// # Symmetry
//
// Component labeling follows out-edges only, so it matches weak
// connectivity only when every edge has its reverse. [Graph.IsSymmetric]
// checks that precondition and [Graph.Symmetrize] returns a graph that
// satisfies it.
package citegraph
