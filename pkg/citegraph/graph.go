package citegraph

import (
	"slices"

	"github.com/matzehuels/citemap/pkg/errors"
)

// Vertex is a dense vertex identifier in [0, n).
type Vertex = int

// Edge is a directed edge from From to To.
type Edge struct {
	From Vertex
	To   Vertex
}

// Graph is a directed adjacency list over vertices 0..N()-1.
//
// The zero value is an empty graph with no vertices.
type Graph struct {
	n   int
	out [][]Vertex
	m   int
}

// New builds a graph with n vertices from a list of directed edges.
// Edges are appended to their source's adjacency list in input order.
// Returns an INVALID_GRAPH error if n is negative or any endpoint is out of
// range.
func New(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "vertex count must not be negative: %d", n)
	}
	out := make([][]Vertex, n)
	for i, e := range edges {
		if !inRange(e.From, n) || !inRange(e.To, n) {
			return nil, errors.New(errors.ErrCodeInvalidGraph,
				"edge %d (%d->%d) has an endpoint outside [0, %d)", i, e.From, e.To, n)
		}
		out[e.From] = append(out[e.From], e.To)
	}
	return &Graph{n: n, out: out, m: len(edges)}, nil
}

// FromAdjacency builds a graph from a prepared adjacency list. The lists are
// copied. Returns an INVALID_GRAPH error if any neighbor is out of range.
func FromAdjacency(adj [][]Vertex) (*Graph, error) {
	n := len(adj)
	out := make([][]Vertex, n)
	m := 0
	for v, nbrs := range adj {
		for _, u := range nbrs {
			if !inRange(u, n) {
				return nil, errors.New(errors.ErrCodeInvalidGraph,
					"vertex %d has neighbor %d outside [0, %d)", v, u, n)
			}
		}
		out[v] = slices.Clone(nbrs)
		m += len(nbrs)
	}
	return &Graph{n: n, out: out, m: m}, nil
}

func inRange(v Vertex, n int) bool { return v >= 0 && v < n }

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// EdgeCount returns the number of directed edges, duplicates included.
func (g *Graph) EdgeCount() int { return g.m }

// Out returns the out-neighbors of v in insertion order.
// The returned slice must not be modified.
func (g *Graph) Out(v Vertex) []Vertex { return g.out[v] }

// Edges returns every edge in source order, then insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.m)
	for v, nbrs := range g.out {
		for _, u := range nbrs {
			edges = append(edges, Edge{From: v, To: u})
		}
	}
	return edges
}

// IsSymmetric reports whether every edge u->v has a matching v->u.
// Multiplicity is ignored.
func (g *Graph) IsSymmetric() bool {
	seen := g.edgeSet()
	for v, nbrs := range g.out {
		for _, u := range nbrs {
			if _, ok := seen[Edge{From: u, To: v}]; !ok {
				return false
			}
		}
	}
	return true
}

// Symmetrize returns a new graph that contains every edge of g plus the
// reverse of every edge whose reverse is missing. Existing edges keep their
// order; added reverse edges follow them.
func (g *Graph) Symmetrize() *Graph {
	seen := g.edgeSet()
	out := make([][]Vertex, g.n)
	for v, nbrs := range g.out {
		out[v] = slices.Clone(nbrs)
	}
	m := g.m
	for v, nbrs := range g.out {
		for _, u := range nbrs {
			rev := Edge{From: u, To: v}
			if _, ok := seen[rev]; ok {
				continue
			}
			seen[rev] = struct{}{}
			out[u] = append(out[u], v)
			m++
		}
	}
	return &Graph{n: g.n, out: out, m: m}
}

// Induced returns the subgraph induced by vertices, re-indexed so that
// vertices[i] becomes vertex i. Edges leaving the set are dropped.
func (g *Graph) Induced(vertices []Vertex) *Graph {
	index := make(map[Vertex]Vertex, len(vertices))
	for i, v := range vertices {
		index[v] = i
	}
	out := make([][]Vertex, len(vertices))
	m := 0
	for i, v := range vertices {
		for _, u := range g.out[v] {
			if j, ok := index[u]; ok {
				out[i] = append(out[i], j)
				m++
			}
		}
	}
	return &Graph{n: len(vertices), out: out, m: m}
}

func (g *Graph) edgeSet() map[Edge]struct{} {
	seen := make(map[Edge]struct{}, g.m)
	for v, nbrs := range g.out {
		for _, u := range nbrs {
			seen[Edge{From: v, To: u}] = struct{}{}
		}
	}
	return seen
}
